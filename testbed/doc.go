// Package testbed synthesizes WebAssembly modules with embedded DWARF v4
// debug sections for tests. The generator covers exactly the subset of the
// line-number program the resolver consumes: set address, advance pc/line,
// set file/column, copy, end of sequence.
package testbed
