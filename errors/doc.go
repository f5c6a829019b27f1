// Package errors provides structured error types for abilink.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Parse errors also record the section being read and the byte offset.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindTruncated).
//		Section("custom section").
//		At(42).
//		Detail("declares %d bytes, %d remain", 10, 3).
//		Build()
//
// Test for a whole phase with the sentinels:
//
//	if errors.Is(err, errors.ErrDecode) { ... } // bad transport text
//	if errors.Is(err, errors.ErrParse) { ... }  // bad module bytes
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
