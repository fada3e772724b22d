package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-sourcemap/sourcemap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const pageSize = 20

type browserState int

const (
	stateFiles browserState = iota
	stateLines
	stateLookup
)

type browserModel struct {
	err      error
	filename string
	files    []sourcemap.SourceFile
	selected int
	offset   int
	lookup   textinput.Model
	found    string
	state    browserState
}

type loadedMsg struct {
	err   error
	files []sourcemap.SourceFile
}

func newBrowserModel(filename string) *browserModel {
	ti := textinput.New()
	ti.Placeholder = "0x1234 or 4660"
	ti.Prompt = "address: "
	ti.Width = 24

	return &browserModel{
		filename: filename,
		lookup:   ti,
		state:    stateFiles,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadMap
}

func (m *browserModel) loadMap() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	sm, err := sourcemap.Extract(data)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{files: sm.Document().Files}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateLookup {
			return m.updateLookup(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "pgup":
			m.moveCursor(-pageSize)

		case "pgdown":
			m.moveCursor(pageSize)

		case "enter":
			if m.state == stateFiles && len(m.files) > 0 {
				m.state = stateLines
				m.offset = 0
			}

		case "/", "a":
			m.found = ""
			m.lookup.SetValue("")
			m.lookup.Focus()
			m.state = stateLookup

		case "esc":
			if m.state == stateLines {
				m.state = stateFiles
			}
		}

	case loadedMsg:
		m.err = msg.err
		m.files = msg.files
	}

	return m, nil
}

func (m *browserModel) updateLookup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		m.found = m.resolveAddress(m.lookup.Value())
		return m, nil

	case "esc":
		m.lookup.Blur()
		m.found = ""
		m.state = stateFiles
		return m, nil
	}

	var cmd tea.Cmd
	m.lookup, cmd = m.lookup.Update(msg)
	return m, cmd
}

func (m *browserModel) moveCursor(delta int) {
	switch m.state {
	case stateFiles:
		m.selected = clamp(m.selected+delta, 0, len(m.files)-1)
	case stateLines:
		max := len(m.files[m.selected].Lines) - pageSize
		if max < 0 {
			max = 0
		}
		m.offset = clamp(m.offset+delta, 0, max)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// resolveAddress maps a module byte offset to the last source position at
// or before it, the same rule a debugger uses for a program counter.
func (m *browserModel) resolveAddress(input string) string {
	addr, err := strconv.ParseUint(strings.TrimSpace(input), 0, 64)
	if err != nil {
		return errorStyle.Render("not an address: " + input)
	}

	bestFile := -1
	var best []uint64
	for fi, f := range m.files {
		for _, l := range f.Lines {
			if l[0] > addr {
				break
			}
			if best == nil || l[0] > best[0] {
				bestFile, best = fi, l
			}
		}
	}
	if best == nil {
		return errorStyle.Render(fmt.Sprintf("no location at or before %#x", addr))
	}
	return resultStyle.Render(fmt.Sprintf("%#08x → %s:%d:%d",
		best[0], m.files[bestFile].File, best[1]+1, best[2]+1))
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.files == nil {
		return "Extracting source map..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Source Map"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateFiles:
		if len(m.files) == 0 {
			b.WriteString("No line tables found in this module.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			break
		}
		b.WriteString("Source files:\n\n")
		for i, f := range m.files {
			row := fmt.Sprintf("%s (%d locations)", f.File, len(f.Lines))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + row))
			} else {
				b.WriteString("  " + fileStyle.Render(f.File) + fmt.Sprintf(" (%d locations)", len(f.Lines)))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • / lookup address • q quit"))

	case stateLines:
		f := m.files[m.selected]
		b.WriteString(fileStyle.Render(f.File))
		b.WriteString(fmt.Sprintf("  %d locations\n\n", len(f.Lines)))

		end := m.offset + pageSize
		if end > len(f.Lines) {
			end = len(f.Lines)
		}
		for _, l := range f.Lines[m.offset:end] {
			b.WriteString(fmt.Sprintf("  %s  line %d, col %d\n",
				addrStyle.Render(fmt.Sprintf("%#08x", l[0])), l[1]+1, l[2]+1))
		}
		if end < len(f.Lines) {
			b.WriteString(helpStyle.Render(fmt.Sprintf("  … %d more\n", len(f.Lines)-end)))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))

	case stateLookup:
		b.WriteString("Look up a module byte offset:\n\n")
		b.WriteString(m.lookup.View())
		b.WriteString("\n\n")
		if m.found != "" {
			b.WriteString(m.found)
			b.WriteString("\n\n")
		}
		b.WriteString(helpStyle.Render("enter resolve • esc back"))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newBrowserModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
