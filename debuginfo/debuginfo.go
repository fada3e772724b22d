package debuginfo

import (
	"debug/dwarf"
	"io"

	wasmsourcemap "github.com/wippyai/wasm-sourcemap"
	"github.com/wippyai/wasm-sourcemap/errors"
)

// Classic DWARF sections passed positionally to dwarf.New.
const (
	secAbbrev  = ".debug_abbrev"
	secAranges = ".debug_aranges"
	secFrame   = ".debug_frame"
	secInfo    = ".debug_info"
	secLine    = ".debug_line"
	secRanges  = ".debug_ranges"
	secStr     = ".debug_str"
)

// DWARF 5 sections registered with AddSection when present.
var extraSections = []string{
	".debug_addr",
	".debug_line_str",
	".debug_str_offsets",
	".debug_rnglists",
}

// Data is the DWARF decoding capability over a module's debug section
// table. It implements wasmsourcemap.Source.
type Data struct {
	d *dwarf.Data
}

// New builds a Data from the name-to-bytes debug section table produced by
// wasm.ExtractDebugSections. Sections absent from the table default to
// empty.
func New(sections map[string][]byte) (*Data, error) {
	d, err := dwarf.New(
		sections[secAbbrev],
		sections[secAranges],
		sections[secFrame],
		sections[secInfo],
		sections[secLine],
		nil, // pclntab: Go runtime specific, never present in wasm objects
		sections[secRanges],
		sections[secStr],
	)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDebugInfo, errors.KindDecodeFailure, err, "load debug sections")
	}

	for _, name := range extraSections {
		if contents, ok := sections[name]; ok {
			if err := d.AddSection(name, contents); err != nil {
				return nil, errors.Wrap(errors.PhaseDebugInfo, errors.KindDecodeFailure, err, "load "+name)
			}
		}
	}

	return &Data{d: d}, nil
}

// Units enumerates the compilation units found in .debug_info.
func (dd *Data) Units() ([]wasmsourcemap.Unit, error) {
	r := dd.d.Reader()
	var units []wasmsourcemap.Unit

	for {
		entry, err := r.Next()
		if err != nil {
			return nil, errors.Wrap(errors.PhaseDebugInfo, errors.KindDecodeFailure, err, "read compilation unit")
		}
		if entry == nil {
			break
		}
		if entry.Tag == dwarf.TagCompileUnit {
			units = append(units, newUnit(dd.d, entry))
		}
		// Only top-level unit entries matter here.
		r.SkipChildren()
	}

	return units, nil
}

type unit struct {
	d       *dwarf.Data
	entry   *dwarf.Entry
	name    string
	compDir string
	lang    uint16
}

func newUnit(d *dwarf.Data, entry *dwarf.Entry) *unit {
	u := &unit{d: d, entry: entry}
	if name, ok := entry.Val(dwarf.AttrName).(string); ok {
		u.name = name
	}
	if dir, ok := entry.Val(dwarf.AttrCompDir).(string); ok {
		u.compDir = dir
	}
	if lang, ok := entry.Val(dwarf.AttrLanguage).(int64); ok {
		u.lang = uint16(lang)
	}
	return u
}

func (u *unit) Name() string     { return u.name }
func (u *unit) CompDir() string  { return u.compDir }
func (u *unit) Language() uint16 { return u.lang }

// Lines returns the unit's line-number program, or (nil, nil) when the unit
// has no line table.
func (u *unit) Lines() (wasmsourcemap.LineReader, error) {
	lr, err := u.d.LineReader(u.entry)
	if err != nil {
		return nil, errors.DecodeFailed(u.name, err)
	}
	if lr == nil {
		return nil, nil
	}
	return &lineReader{unit: u.name, lr: lr}, nil
}

type lineReader struct {
	unit string
	lr   *dwarf.LineReader
	le   dwarf.LineEntry
}

// Next fills row with the next line program row, translating debug/dwarf's
// conventions to the Source contract: Line 0 means no line, Column 0 is the
// left-edge sentinel, and the file entry is nil when unresolvable. The
// directory is reported empty because debug/dwarf already folds the file
// table's directory into the entry name.
func (r *lineReader) Next(row *wasmsourcemap.Row) (bool, error) {
	err := r.lr.Next(&r.le)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, errors.DecodeFailed(r.unit, err)
	}

	row.Address = r.le.Address
	row.Line = r.le.Line
	row.Column = r.le.Column
	row.EndSequence = r.le.EndSequence
	row.File = nil
	if r.le.File != nil {
		row.File = &wasmsourcemap.FileEntry{PathName: r.le.File.Name}
	}
	return true, nil
}

// Interface check.
var _ wasmsourcemap.Source = (*Data)(nil)
