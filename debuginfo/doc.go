// Package debuginfo decodes the DWARF debug information embedded in a
// WebAssembly module's ".debug_*" custom sections.
//
// It is a thin adapter from the standard library's debug/dwarf to the
// Source contract in the root package: compilation units are enumerated
// from .debug_info, and each unit's line-number program is surfaced as a
// row stream. The heavy lifting (abbreviation tables, attribute forms, the
// line-program byte code) is debug/dwarf's job; this package only maps its
// conventions onto the contract.
package debuginfo
