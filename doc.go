// Package wasmsourcemap extracts source maps from WebAssembly modules
// compiled with embedded DWARF debug information.
//
// The library scans a module's binary container for the code section and the
// ".debug_*" custom sections, decodes the DWARF line-number programs found
// there, and resolves every executable instruction offset to the source
// file, line, and column it was compiled from. The result is a source map a
// debugger can use to step through or set breakpoints in the original
// source of the module.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	wasmsourcemap/       Root package with the debug-info Source contract
//	├── sourcemap/       Line table resolver and source-map assembly
//	├── wasm/            Module section scanner and debug section table
//	├── debuginfo/       DWARF decoding backed by debug/dwarf
//	├── srcpath/         Canonical source path normalization
//	├── errors/          Structured error types
//	├── testbed/         DWARF and module synthesis for tests
//	└── cmd/             wasm-sourcemap command line tool
//
// # Quick Start
//
// Extract a source map from a module:
//
//	data, _ := os.ReadFile("module.wasm")
//	m, err := sourcemap.Extract(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	json.NewEncoder(os.Stdout).Encode(m.Document())
//
// # Addressing
//
// DWARF line programs in WebAssembly objects record instruction offsets
// relative to the start of the code section's payload. All addresses in the
// resolved source map are biased by the code section's absolute byte offset
// within the module, so they can be compared directly against byte offsets
// into the module file.
//
// # Custom Debug Sources
//
// The resolver consumes the Source interface defined in this package rather
// than debug/dwarf directly. Tooling that obtains line tables elsewhere
// (split DWARF, symbol servers) can implement Source and reuse the resolver
// unchanged.
package wasmsourcemap
