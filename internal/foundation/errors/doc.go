// Package errors provides the classified error primitives used across mdport.
//
// Every error raised outside the pure rendering core carries a category, a
// severity and a retry hint so the CLI can choose an exit code and a log level
// without string matching. The core itself never surfaces errors: it logs a
// classified sentinel and degrades to literal, empty or safe output.
//
// Example usage:
//
//	err := errors.StorageError("save draft failed").
//		WithContext("draft", name).
//		WithCause(originalErr).
//		Build()
package errors
