package wasm

import (
	"errors"
	"fmt"
	"io"

	"github.com/wippyai/wasm-sourcemap/internal/binary"
)

// Parsing errors returned by NewSectionReader.
var ErrInvalidMagic = errors.New("invalid wasm magic number")

// UnsupportedVersionError is returned when the module's version field is not
// the supported binary format version.
type UnsupportedVersionError struct {
	Version uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported wasm version %d", e.Version)
}

// Section is one framed module section. Payload aliases the module buffer
// and must not outlive it.
type Section struct {
	// ID is the section's numeric id; SectionCustom (0) for custom sections.
	ID byte

	// Name is the custom section name. Empty for standard sections.
	Name string

	// Offset is the absolute byte offset of Payload within the module. For
	// custom sections it points past the embedded name.
	Offset int

	// Payload is the section's contents: for custom sections the bytes
	// following the name, for standard sections the whole payload.
	Payload []byte
}

// Custom reports whether the section is a custom (named) section.
func (s *Section) Custom() bool {
	return s.ID == SectionCustom
}

// SectionReader frames a WebAssembly module into a sequence of sections.
// It is a lazy, finite, non-restartable iterator: sections are decoded on
// demand and consumption stops at the end of the buffer.
type SectionReader struct {
	data []byte
	r    *binary.Reader
}

// NewSectionReader validates the module header and returns a reader over the
// module's sections. It fails with ErrInvalidMagic or
// *UnsupportedVersionError when the 8-byte header is not a supported
// WebAssembly preamble.
func NewSectionReader(data []byte) (*SectionReader, error) {
	r := binary.NewReader(data)

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}

	version, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if version != Version {
		return nil, &UnsupportedVersionError{Version: version}
	}

	return &SectionReader{data: data, r: r}, nil
}

// Next returns the next section, or io.EOF once the module is exhausted.
// A malformed section id, length, or name fails the whole scan.
func (sr *SectionReader) Next() (*Section, error) {
	if sr.r.Len() == 0 {
		return nil, io.EOF
	}

	id, err := sr.r.ReadU32()
	if err != nil {
		return nil, sr.r.WrapError("section id", err)
	}
	if id > 0xff {
		return nil, sr.r.WrapError("section id", fmt.Errorf("section id %d out of range", id))
	}

	size, err := sr.r.ReadU32()
	if err != nil {
		return nil, sr.r.WrapError("section size", err)
	}

	start := sr.r.Position()
	payload, err := sr.r.ReadBytes(int(size))
	if err != nil {
		return nil, sr.r.WrapError("section payload", err)
	}

	sec := &Section{ID: byte(id), Offset: start, Payload: payload}
	if sec.ID != SectionCustom {
		return sec, nil
	}

	pr := binary.NewReader(payload)
	name, err := pr.ReadName()
	if err != nil {
		return nil, sr.r.WrapError("custom section name", err)
	}
	sec.Name = name
	sec.Offset = start + pr.Position()
	sec.Payload = pr.ReadRemaining()
	return sec, nil
}
