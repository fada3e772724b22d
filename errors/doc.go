// Package errors provides structured error types for the wasm-sourcemap library.
//
// Errors are categorized by Phase (where in the pipeline the error occurred)
// and Kind (error category). The Error type carries the compilation unit
// name when one is in scope, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindMalformedData).
//		Unit("clang/main.c").
//		Detail("row reports line 0").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingSection(errors.PhaseScan, "code")
//	err := errors.DecodeFailed(unitName, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
