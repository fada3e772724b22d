// Package wasm provides the minimal WebAssembly container scanning needed
// to locate debug information.
//
// The scanner frames a binary module into its sections without interpreting
// them: it validates the 8-byte preamble, then walks the id/size-framed
// section sequence lazily. Two things are extracted on top of the framing:
//
//   - the absolute byte offset of the code section payload, which biases
//     every DWARF instruction address into a module-absolute address, and
//   - the ".debug_*" custom sections, collected into a name-to-bytes table
//     for the DWARF decoder.
//
// Section payloads alias the module buffer; nothing is copied or validated
// beyond what section framing requires.
package wasm
