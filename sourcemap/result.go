package sourcemap

import (
	"github.com/wippyai/wasm-sourcemap/errors"
)

// SourceFile is one source file's resolved line table in the grouped
// output document.
type SourceFile struct {
	File     string     `json:"file"`
	Language uint16     `json:"language"`
	Lines    [][]uint64 `json:"lines"` // [address, line, column] triples
}

// Document is the grouped-by-file output shape, the default serialization.
type Document struct {
	Files []SourceFile `json:"files"`
}

// CompactDocument is the alternate flat output shape: one global file list
// plus one global location table carrying file indices.
type CompactDocument struct {
	Files     []string   `json:"files"`
	Locations [][]uint64 `json:"locations"` // [address, fileIndex, line, column]
}

// ErrorDocument replaces any partial output when extraction fails.
type ErrorDocument struct {
	Error string `json:"error"`
}

// UnitInfo describes one compilation unit seen during resolution.
type UnitInfo struct {
	Name     string
	CompDir  string
	Language uint16
}

// location is one resolved instruction address with its source position and
// owning file index.
type location struct {
	addr uint64
	line uint32
	col  uint32
	file int
}

// fileTable accumulates one canonical source file's locations.
type fileTable struct {
	path     string
	language uint16
	entries  []location
}

// Map is a resolved source map prior to serialization. Files keep their
// first-seen order, which fixes both the grouped document's file order and
// the compact document's file-index assignment.
type Map struct {
	files  []*fileTable
	global []location
	units  []UnitInfo
}

// Units returns the compilation units that contributed to the map, in
// processing order.
func (m *Map) Units() []UnitInfo {
	return m.units
}

// Files returns the canonical file paths in first-seen order.
func (m *Map) Files() []string {
	paths := make([]string, len(m.files))
	for i, ft := range m.files {
		paths[i] = ft.path
	}
	return paths
}

// Document assembles the grouped-by-file output document.
func (m *Map) Document() *Document {
	doc := &Document{Files: make([]SourceFile, 0, len(m.files))}
	for _, ft := range m.files {
		sf := SourceFile{
			File:     ft.path,
			Language: ft.language,
			Lines:    make([][]uint64, 0, len(ft.entries)),
		}
		for _, e := range ft.entries {
			sf.Lines = append(sf.Lines, []uint64{e.addr, uint64(e.line), uint64(e.col)})
		}
		doc.Files = append(doc.Files, sf)
	}
	return doc
}

// Compact assembles the flat output document from the globally
// deduplicated location table.
func (m *Map) Compact() (*CompactDocument, error) {
	doc := &CompactDocument{
		Files:     m.Files(),
		Locations: make([][]uint64, 0, len(m.global)),
	}
	for _, loc := range m.global {
		if loc.file < 0 || loc.file >= len(m.files) {
			return nil, errors.Internal(errors.PhaseEmit, "location %#x references unknown file index %d", loc.addr, loc.file)
		}
		doc.Locations = append(doc.Locations, []uint64{loc.addr, uint64(loc.file), uint64(loc.line), uint64(loc.col)})
	}
	return doc, nil
}
