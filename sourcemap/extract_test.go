package sourcemap_test

import (
	"errors"
	"reflect"
	"testing"

	wasmsourcemap "github.com/wippyai/wasm-sourcemap"
	"github.com/wippyai/wasm-sourcemap/sourcemap"
	"github.com/wippyai/wasm-sourcemap/testbed"
	"github.com/wippyai/wasm-sourcemap/wasm"
)

// codeOffset recovers the code section payload offset of a synthesized
// module, so expectations don't hardcode container framing.
func codeOffset(t *testing.T, data []byte) uint64 {
	t.Helper()
	di, err := wasm.ExtractDebugSections(data)
	if err != nil {
		t.Fatalf("ExtractDebugSections: %v", err)
	}
	return di.CodeOffset
}

func TestExtractEndToEnd(t *testing.T) {
	data := testbed.Module(testbed.DebugSections(testbed.UnitConfig{
		Name:     "main.c",
		CompDir:  "/src",
		Language: wasmsourcemap.LangC99,
		Files:    []string{"main.c"},
		Program: func(p *testbed.LineProgram) {
			p.SetAddress(0x10)
			p.AdvanceLine(2)
			p.SetColumn(5)
			p.Copy()
			p.AdvancePC(4)
			p.AdvanceLine(1)
			p.SetColumn(3)
			p.Copy()
			p.AdvancePC(4)
			p.EndSequence()
		},
	}))
	co := codeOffset(t, data)

	m, err := sourcemap.Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	doc := m.Document()
	if len(doc.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(doc.Files))
	}
	sf := doc.Files[0]
	if sf.File != "/src/main.c" {
		t.Errorf("file: got %q", sf.File)
	}
	if sf.Language != wasmsourcemap.LangC99 {
		t.Errorf("language: got %#x", sf.Language)
	}
	want := [][]uint64{
		{co + 0x10, 2, 4},
		{co + 0x14, 3, 2},
	}
	if !reflect.DeepEqual(sf.Lines, want) {
		t.Errorf("lines: got %v, want %v", sf.Lines, want)
	}

	units := m.Units()
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].Name != "main.c" || units[0].CompDir != "/src" {
		t.Errorf("unit: got %+v", units[0])
	}
}

func TestExtractCompact(t *testing.T) {
	data := testbed.Module(testbed.DebugSections(testbed.UnitConfig{
		Name:     "main.c",
		CompDir:  "/src",
		Language: wasmsourcemap.LangC99,
		Files:    []string{"main.c"},
		Program: func(p *testbed.LineProgram) {
			p.SetAddress(0x10)
			p.Copy()
			p.AdvancePC(2)
			p.AdvanceLine(1)
			p.Copy()
			p.AdvancePC(2)
			p.EndSequence()
		},
	}))
	co := codeOffset(t, data)

	m, err := sourcemap.Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	doc, err := m.Compact()
	if err != nil {
		t.Fatalf("Compact: %v", err)
	}

	if !reflect.DeepEqual(doc.Files, []string{"/src/main.c"}) {
		t.Errorf("files: got %v", doc.Files)
	}
	want := [][]uint64{
		{co + 0x10, 0, 0, 0},
		{co + 0x12, 0, 1, 0},
	}
	if !reflect.DeepEqual(doc.Locations, want) {
		t.Errorf("locations: got %v, want %v", doc.Locations, want)
	}
}

func TestExtractTombstoneSequence(t *testing.T) {
	data := testbed.Module(testbed.DebugSections(testbed.UnitConfig{
		Name:     "lib.c",
		CompDir:  "/src",
		Language: wasmsourcemap.LangC99,
		Files:    []string{"lib.c"},
		Program: func(p *testbed.LineProgram) {
			// Stripped function: the sequence starts at address 0 and every
			// row in it must be discarded, even those past address 0.
			p.Copy()
			p.AdvancePC(2)
			p.Copy()
			p.EndSequence()

			p.SetAddress(0x20)
			p.AdvanceLine(4)
			p.Copy()
			p.AdvancePC(2)
			p.EndSequence()
		},
	}))
	co := codeOffset(t, data)

	m, err := sourcemap.Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	doc := m.Document()
	if len(doc.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(doc.Files))
	}
	want := [][]uint64{{co + 0x20, 4, 0}}
	if !reflect.DeepEqual(doc.Files[0].Lines, want) {
		t.Errorf("lines: got %v, want %v", doc.Files[0].Lines, want)
	}
}

func TestExtractRustColumnCorrection(t *testing.T) {
	data := testbed.Module(testbed.DebugSections(testbed.UnitConfig{
		Name:     "lib.rs",
		CompDir:  "/crate",
		Language: wasmsourcemap.LangRust,
		Files:    []string{"lib.rs"},
		Program: func(p *testbed.LineProgram) {
			p.SetAddress(0x08)
			p.SetColumn(7)
			p.Copy()
			p.AdvancePC(2)
			p.EndSequence()
		},
	}))
	co := codeOffset(t, data)

	m, err := sourcemap.Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	lines := m.Document().Files[0].Lines
	want := [][]uint64{{co + 0x08, 0, 7}}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines: got %v, want %v", lines, want)
	}
}

func TestExtractMultiUnit(t *testing.T) {
	data := testbed.Module(testbed.DebugSections(
		testbed.UnitConfig{
			Name:     "a.c",
			CompDir:  "/src",
			Language: wasmsourcemap.LangC99,
			Files:    []string{"a.c"},
			Program: func(p *testbed.LineProgram) {
				p.SetAddress(0x10)
				p.Copy()
				p.AdvancePC(2)
				p.EndSequence()
			},
		},
		testbed.UnitConfig{
			Name:     "b.c",
			CompDir:  "/src",
			Language: wasmsourcemap.LangC99,
			Files:    []string{"b.c"},
			Program: func(p *testbed.LineProgram) {
				// Claims the same instruction as a.c; the earlier unit wins
				// in the global table.
				p.SetAddress(0x10)
				p.AdvanceLine(9)
				p.Copy()
				p.AdvancePC(2)
				p.AdvanceLine(1)
				p.Copy()
				p.AdvancePC(2)
				p.EndSequence()
			},
		},
	))
	co := codeOffset(t, data)

	m, err := sourcemap.Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got := m.Files(); !reflect.DeepEqual(got, []string{"/src/a.c", "/src/b.c"}) {
		t.Errorf("files: got %v", got)
	}

	doc, err := m.Compact()
	if err != nil {
		t.Fatalf("Compact: %v", err)
	}
	want := [][]uint64{
		{co + 0x10, 0, 0, 0},
		{co + 0x12, 1, 10, 0},
	}
	if !reflect.DeepEqual(doc.Locations, want) {
		t.Errorf("locations: got %v, want %v", doc.Locations, want)
	}
}

func TestExtractUnitWithoutRows(t *testing.T) {
	data := testbed.Module(testbed.DebugSections(testbed.UnitConfig{
		Name:     "empty.c",
		CompDir:  "/src",
		Language: wasmsourcemap.LangC99,
		Files:    []string{"empty.c"},
	}))

	m, err := sourcemap.Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(m.Document().Files) != 0 {
		t.Errorf("expected no files, got %v", m.Files())
	}
}

func TestExtractMissingCodeSection(t *testing.T) {
	data := testbed.ModuleWithoutCode(testbed.DebugSections(testbed.UnitConfig{
		Name:     "main.c",
		CompDir:  "/src",
		Language: wasmsourcemap.LangC99,
		Files:    []string{"main.c"},
	}))

	_, err := sourcemap.Extract(data)
	if !errors.Is(err, wasm.ErrMissingCodeSection) {
		t.Errorf("expected missing code section error, got %v", err)
	}
}

func TestExtractNotWasm(t *testing.T) {
	_, err := sourcemap.Extract([]byte("\x7fELF\x02\x01\x01\x00"))
	if !errors.Is(err, wasm.ErrInvalidMagic) {
		t.Errorf("expected invalid magic error, got %v", err)
	}
}
