package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the pipeline the error occurred
type Phase string

const (
	PhaseScan      Phase = "scan"      // module container scanning
	PhaseDebugInfo Phase = "debuginfo" // DWARF decoding
	PhaseResolve   Phase = "resolve"   // line table resolution
	PhaseEmit      Phase = "emit"      // document assembly and output
)

// Kind categorizes the error
type Kind string

const (
	KindMissingSection Kind = "missing_section"
	KindMalformedData  Kind = "malformed_data"
	KindDecodeFailure  Kind = "decode_failure"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
	KindIO             Kind = "io"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Unit   string // compilation unit name, when known
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Unit != "" {
		b.WriteString(" in unit ")
		b.WriteString(fmt.Sprintf("%q", e.Unit))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Unit sets the compilation unit name
func (b *Builder) Unit(name string) *Builder {
	b.err.Unit = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MissingSection creates an error for a required section that was not found
func MissingSection(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingSection,
		Detail: fmt.Sprintf("required section %s not found", name),
	}
}

// Malformed creates a malformed data error
func Malformed(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformedData,
		Detail: detail,
		Cause:  cause,
	}
}

// DecodeFailed creates an error for a DWARF decoding failure
func DecodeFailed(unit string, cause error) *Error {
	return &Error{
		Phase: PhaseDebugInfo,
		Kind:  KindDecodeFailure,
		Unit:  unit,
		Cause: cause,
	}
}

// Internal creates an error for a violated invariant. It signals a logic
// defect in the resolver, not bad input.
func Internal(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// IO creates a boundary read/write error
func IO(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseEmit,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
