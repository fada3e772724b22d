package wasm

import (
	"errors"
	"io"
	"strings"
)

// ErrMissingCodeSection is returned when a module contains no code section.
// Without it the DWARF instruction addresses cannot be biased to module
// offsets, so the whole extraction is aborted.
var ErrMissingCodeSection = errors.New("missing code section")

// DebugInfo holds the raw material the DWARF decoding capability needs: the
// module's ".debug_*" custom sections and the absolute byte offset of the
// code section's payload.
type DebugInfo struct {
	// Sections maps DWARF section names to their raw bytes. Names not
	// present in the module are simply absent. The byte slices alias the
	// module buffer.
	Sections map[string][]byte

	// CodeOffset is the absolute byte offset of the code section payload.
	// All DWARF instruction addresses are relative to it.
	CodeOffset uint64
}

// ExtractDebugSections scans data and collects every custom section whose
// name begins with DebugSectionPrefix, along with the code section offset.
// If a debug section name repeats, the last occurrence wins.
func ExtractDebugSections(data []byte) (*DebugInfo, error) {
	sr, err := NewSectionReader(data)
	if err != nil {
		return nil, err
	}

	di := &DebugInfo{Sections: make(map[string][]byte)}
	haveCode := false

	for {
		sec, err := sr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch {
		case sec.Custom() && strings.HasPrefix(sec.Name, DebugSectionPrefix):
			di.Sections[sec.Name] = sec.Payload
		case sec.ID == SectionCode:
			di.CodeOffset = uint64(sec.Offset)
			haveCode = true
		}
	}

	if !haveCode {
		return nil, ErrMissingCodeSection
	}
	return di, nil
}
