package sourcemap

import (
	"sort"

	"go.uber.org/zap"

	wasmsourcemap "github.com/wippyai/wasm-sourcemap"
	"github.com/wippyai/wasm-sourcemap/errors"
	"github.com/wippyai/wasm-sourcemap/srcpath"
)

// funcState tracks the per-sequence row walk. A sequence whose first row
// sits at address 0 is a tombstone: some toolchains emit those for
// functions the linker stripped, and their rows must not reach the map.
type funcState int

const (
	stateStart funcState = iota
	stateIgnored
	stateNormal
)

// Resolve walks every compilation unit of src and accumulates the source
// map. codeOffset is the absolute byte offset of the module's code section
// payload; it biases every row address into a module-absolute address.
func Resolve(src wasmsourcemap.Source, codeOffset uint64) (*Map, error) {
	b := &builder{
		codeOffset: codeOffset,
		index:      make(map[string]int),
	}

	units, err := src.Units()
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		if err := b.resolveUnit(u); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

// builder is the resolver's accumulation state, created fresh per Resolve
// call and discarded when it returns.
type builder struct {
	codeOffset uint64
	files      []*fileTable
	index      map[string]int
	global     []location
	units      []UnitInfo
}

func (b *builder) resolveUnit(u wasmsourcemap.Unit) error {
	rows, err := u.Lines()
	if err != nil {
		return err
	}
	if rows == nil {
		Logger().Debug("unit has no line program", zap.String("unit", u.Name()))
		return nil
	}

	lang := u.Language()
	// rustc under-reports DWARF columns by one (rust-lang/rust#65437), so
	// the zero-basing subtraction is compensated for Rust units. Decided
	// once per unit and applied to every row.
	colBias := 0
	if lang == wasmsourcemap.LangRust {
		colBias = 1
	}

	b.units = append(b.units, UnitInfo{Name: u.Name(), CompDir: u.CompDir(), Language: lang})

	state := stateStart
	var row wasmsourcemap.Row
	recorded, skipped := 0, 0

	for {
		ok, err := rows.Next(&row)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		if state == stateStart {
			if row.Address == 0 {
				state = stateIgnored
			} else {
				state = stateNormal
			}
		}
		if state == stateIgnored {
			if row.EndSequence {
				state = stateStart
			}
			continue
		}
		if row.EndSequence {
			state = stateStart
			continue
		}

		if row.Line == 0 || row.File == nil {
			// Instruction could not be attributed to a source position.
			skipped++
			continue
		}
		if row.Line < 0 {
			return errors.New(errors.PhaseResolve, errors.KindMalformedData).
				Unit(u.Name()).
				Detail("row at %#x reports negative line %d", row.Address, row.Line).
				Build()
		}

		line := uint32(row.Line - 1)
		var col uint32
		if row.Column > 0 {
			col = uint32(row.Column - 1 + colBias)
		}

		loc := location{
			addr: b.codeOffset + row.Address,
			line: line,
			col:  col,
			file: b.fileIndex(row.File, lang),
		}
		b.files[loc.file].entries = append(b.files[loc.file].entries, loc)
		b.global = append(b.global, loc)
		recorded++
	}

	Logger().Debug("unit resolved",
		zap.String("unit", u.Name()),
		zap.Int("rows", recorded),
		zap.Int("skipped", skipped))
	return nil
}

// fileIndex resolves a row's file entry to its canonical path and returns
// the index of that path's table, creating it on first sight. The file's
// language is fixed by the first unit that mentions it.
func (b *builder) fileIndex(fe *wasmsourcemap.FileEntry, lang uint16) int {
	p := srcpath.New(".")
	if fe.Directory != "" {
		p = srcpath.New(fe.Directory)
	}
	p.Push(fe.PathName)
	key := p.String()

	if i, ok := b.index[key]; ok {
		return i
	}
	i := len(b.files)
	b.index[key] = i
	b.files = append(b.files, &fileTable{path: key, language: lang})
	return i
}

// finish applies the ordering and uniqueness invariants. The sorts must be
// stable: duplicate addresses are resolved "first encountered wins", which
// is only deterministic under a stable sort.
func (b *builder) finish() *Map {
	sort.SliceStable(b.global, func(i, j int) bool {
		return b.global[i].addr < b.global[j].addr
	})
	b.global = dedupByAddress(b.global)

	for _, ft := range b.files {
		sort.SliceStable(ft.entries, func(i, j int) bool {
			return ft.entries[i].addr < ft.entries[j].addr
		})
		ft.entries = dedupByPosition(dedupByAddress(ft.entries))
	}

	Logger().Debug("map resolved",
		zap.Int("units", len(b.units)),
		zap.Int("files", len(b.files)),
		zap.Int("locations", len(b.global)))

	return &Map{files: b.files, global: b.global, units: b.units}
}

// dedupByAddress removes consecutive entries sharing an address, keeping
// the first. The input must already be address-sorted.
func dedupByAddress(locs []location) []location {
	out := locs[:0]
	for i, loc := range locs {
		if i > 0 && loc.addr == out[len(out)-1].addr {
			continue
		}
		out = append(out, loc)
	}
	return out
}

// dedupByPosition drops entries repeating an already-kept (line, column)
// pair, so every surviving source position maps to a single address.
func dedupByPosition(locs []location) []location {
	seen := make(map[uint64]struct{}, len(locs))
	out := locs[:0]
	for _, loc := range locs {
		key := uint64(loc.line)<<32 | uint64(loc.col)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, loc)
	}
	return out
}
