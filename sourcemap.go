package wasmsourcemap

// FileEntry identifies the source file a line-program row belongs to.
// Directory may be empty when the producer already folded the directory
// into PathName.
type FileEntry struct {
	Directory string
	PathName  string
}

// Row is one row of a compilation unit's line-number program.
type Row struct {
	// Address is the instruction offset relative to the module's code section.
	Address uint64

	// Line is the 1-based source line. 0 means the instruction could not be
	// attributed to any line.
	Line int

	// Column is the 1-based source column. 0 is the left-edge sentinel.
	Column int

	// EndSequence marks the end of a contiguous instruction range. Address
	// is valid on such rows; the remaining fields are not.
	EndSequence bool

	// File is the row's file entry, or nil when it cannot be resolved.
	File *FileEntry
}

// LineReader produces the rows of one line-number program in order.
type LineReader interface {
	// Next fills row with the next program row. It returns false when the
	// program is exhausted.
	Next(row *Row) (bool, error)
}

// Unit is one DWARF compilation unit.
type Unit interface {
	// Name returns the unit's DW_AT_name, or "" when absent.
	Name() string

	// CompDir returns the unit's compilation directory, or "" when absent.
	CompDir() string

	// Language returns the unit's numeric DWARF language code, or 0.
	Language() uint16

	// Lines returns the unit's line-number program. Units without a line
	// program return (nil, nil) and contribute nothing to the source map.
	Lines() (LineReader, error)
}

// Source is a DWARF debug-info decoding capability: it enumerates the
// compilation units found in a module's embedded debug sections.
//
// The canonical implementation is debuginfo.Data, backed by the standard
// library's debug/dwarf. The resolver in package sourcemap depends only on
// this contract.
type Source interface {
	Units() ([]Unit, error)
}

// DWARF source language codes (DW_LANG_*), as reported by Unit.Language.
const (
	LangC89      uint16 = 0x0001
	LangC        uint16 = 0x0002
	LangAda83    uint16 = 0x0003
	LangCpp      uint16 = 0x0004
	LangFortran  uint16 = 0x0008
	LangJava     uint16 = 0x000b
	LangC99      uint16 = 0x000c
	LangObjC     uint16 = 0x0010
	LangD        uint16 = 0x0013
	LangPython   uint16 = 0x0014
	LangGo       uint16 = 0x0016
	LangHaskell  uint16 = 0x0018
	LangCpp03    uint16 = 0x0019
	LangCpp11    uint16 = 0x001a
	LangOCaml    uint16 = 0x001b
	LangRust     uint16 = 0x001c
	LangC11      uint16 = 0x001d
	LangSwift    uint16 = 0x001e
	LangCpp14    uint16 = 0x0021
	LangZig      uint16 = 0x0027
	LangKotlin   uint16 = 0x0026
	LangC17      uint16 = 0x002c
	LangCpp17    uint16 = 0x002a
	LangCpp20    uint16 = 0x002b
	LangAssembly uint16 = 0x0031
)
