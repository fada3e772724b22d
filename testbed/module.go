package testbed

import (
	"sort"

	"github.com/wippyai/wasm-sourcemap/internal/binary"
	"github.com/wippyai/wasm-sourcemap/wasm"
)

// codeBody is a minimal single-function code section payload:
// one body, two bytes (no locals, end opcode).
var codeBody = []byte{0x01, 0x02, 0x00, 0x0b}

// Module assembles a WebAssembly container with a one-function code section
// followed by the given custom sections, emitted in sorted name order for
// determinism.
func Module(custom map[string][]byte) []byte {
	return assemble(custom, true)
}

// ModuleWithoutCode assembles a container that carries the custom sections
// but no code section.
func ModuleWithoutCode(custom map[string][]byte) []byte {
	return assemble(custom, false)
}

func assemble(custom map[string][]byte, withCode bool) []byte {
	w := binary.NewWriter()
	w.WriteU32LE(wasm.Magic)
	w.WriteU32LE(wasm.Version)

	// Empty type section, so the container is not a bare header.
	w.Byte(wasm.SectionType)
	w.WriteU32(1)
	w.Byte(0x00)

	if withCode {
		w.Byte(wasm.SectionCode)
		w.WriteU32(uint32(len(codeBody)))
		w.WriteBytes(codeBody)
	}

	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		body := binary.NewWriter()
		body.WriteName(name)
		body.WriteBytes(custom[name])
		w.Byte(wasm.SectionCustom)
		w.WriteU32(uint32(body.Len()))
		w.WriteBytes(body.Bytes())
	}

	return w.Bytes()
}
