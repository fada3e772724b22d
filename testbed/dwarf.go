package testbed

import (
	"github.com/wippyai/wasm-sourcemap/internal/binary"
)

// DWARF v4 line-number program opcodes used by the generator.
const (
	opCopy        byte = 0x01
	opAdvancePC   byte = 0x02
	opAdvanceLine byte = 0x03
	opSetFile     byte = 0x04
	opSetColumn   byte = 0x05

	extSetAddress  byte = 0x02
	extEndSequence byte = 0x01
)

// UnitConfig describes one synthetic compilation unit.
type UnitConfig struct {
	Name     string
	CompDir  string
	Language uint16

	// Files is the unit's file table. Line program ops reference entries
	// with 1-based indices; the default file register is 1.
	Files []string

	// Program emits the unit's line-number program ops.
	Program func(p *LineProgram)
}

// LineProgram emits DWARF v4 line-number program opcodes. The registers
// start at address 0, file 1, line 1, column 0 and reset after every end
// of sequence.
type LineProgram struct {
	w *binary.Writer
}

// SetAddress sets the address register (DW_LNE_set_address, 4-byte target).
func (p *LineProgram) SetAddress(addr uint32) {
	p.w.Byte(0x00)
	p.w.WriteU32(5)
	p.w.Byte(extSetAddress)
	p.w.WriteU32LE(addr)
}

// AdvancePC advances the address register.
func (p *LineProgram) AdvancePC(delta uint64) {
	p.w.Byte(opAdvancePC)
	p.w.WriteU64(delta)
}

// AdvanceLine adjusts the line register by a signed delta.
func (p *LineProgram) AdvanceLine(delta int64) {
	p.w.Byte(opAdvanceLine)
	p.w.WriteS64(delta)
}

// SetFile sets the file register to a 1-based file table index.
func (p *LineProgram) SetFile(index uint32) {
	p.w.Byte(opSetFile)
	p.w.WriteU32(index)
}

// SetColumn sets the column register (1-based, 0 = left edge).
func (p *LineProgram) SetColumn(col uint32) {
	p.w.Byte(opSetColumn)
	p.w.WriteU32(col)
}

// Copy emits a row with the current registers.
func (p *LineProgram) Copy() {
	p.w.Byte(opCopy)
}

// EndSequence emits an end-of-sequence row and resets the registers.
func (p *LineProgram) EndSequence() {
	p.w.Byte(0x00)
	p.w.WriteU32(1)
	p.w.Byte(extEndSequence)
}

// DebugSections assembles DWARF version 4 .debug_abbrev, .debug_info and
// .debug_line sections describing the given compilation units, keyed the
// way they would appear as wasm custom sections.
func DebugSections(units ...UnitConfig) map[string][]byte {
	info := binary.NewWriter()
	line := binary.NewWriter()

	for _, u := range units {
		stmtList := uint32(line.Len())
		writeLineTable(line, u)
		writeInfoUnit(info, u, stmtList)
	}

	return map[string][]byte{
		".debug_abbrev": abbrevTable(),
		".debug_info":   info.Bytes(),
		".debug_line":   line.Bytes(),
	}
}

// abbrevTable returns a single compile-unit abbreviation with inline string
// attributes, so no .debug_str section is needed.
func abbrevTable() []byte {
	w := binary.NewWriter()
	w.WriteU32(1)    // abbrev code
	w.WriteU32(0x11) // DW_TAG_compile_unit
	w.Byte(0)        // DW_CHILDREN_no

	attrs := [][2]uint32{
		{0x03, 0x08}, // DW_AT_name, DW_FORM_string
		{0x1b, 0x08}, // DW_AT_comp_dir, DW_FORM_string
		{0x13, 0x05}, // DW_AT_language, DW_FORM_data2
		{0x10, 0x17}, // DW_AT_stmt_list, DW_FORM_sec_offset
	}
	for _, a := range attrs {
		w.WriteU32(a[0])
		w.WriteU32(a[1])
	}
	w.Byte(0)
	w.Byte(0) // end of attributes
	w.Byte(0) // end of abbreviations
	return w.Bytes()
}

func writeInfoUnit(info *binary.Writer, u UnitConfig, stmtList uint32) {
	body := binary.NewWriter()
	body.WriteU16LE(4) // DWARF version
	body.WriteU32LE(0) // abbrev table offset
	body.Byte(4)       // address size

	body.WriteU32(1) // abbrev code
	body.WriteCString(u.Name)
	body.WriteCString(u.CompDir)
	body.WriteU16LE(u.Language)
	body.WriteU32LE(stmtList)

	info.WriteU32LE(uint32(body.Len()))
	info.WriteBytes(body.Bytes())
}

func writeLineTable(line *binary.Writer, u UnitConfig) {
	hdr := binary.NewWriter()
	hdr.Byte(1)    // minimum_instruction_length
	hdr.Byte(1)    // maximum_operations_per_instruction
	hdr.Byte(1)    // default_is_stmt
	hdr.Byte(0xfb) // line_base (-5)
	hdr.Byte(14)   // line_range
	hdr.Byte(13)   // opcode_base
	for _, n := range []byte{0, 1, 1, 1, 1, 0, 0, 0, 1, 0, 0, 1} {
		hdr.Byte(n) // standard_opcode_lengths
	}
	hdr.Byte(0) // empty include_directories
	for _, f := range u.Files {
		hdr.WriteCString(f)
		hdr.WriteU32(0) // directory index (compilation directory)
		hdr.WriteU32(0) // mtime
		hdr.WriteU32(0) // length
	}
	hdr.Byte(0) // end of file table

	prog := binary.NewWriter()
	if u.Program != nil {
		u.Program(&LineProgram{w: prog})
	}

	body := binary.NewWriter()
	body.WriteU16LE(4) // DWARF version
	body.WriteU32LE(uint32(hdr.Len()))
	body.WriteBytes(hdr.Bytes())
	body.WriteBytes(prog.Bytes())

	line.WriteU32LE(uint32(body.Len()))
	line.WriteBytes(body.Bytes())
}
