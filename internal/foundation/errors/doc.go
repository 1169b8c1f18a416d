// Package errors provides the classified error primitives used across notesite.
//
// Errors carry a category (config, validation, docs, render, ...), a severity and
// structured context. A fluent builder keeps construction uniform:
//
//	err := errors.NewError(errors.CategoryConfig, "unknown navbar item type").
//		WithContext("index", i).
//		WithCause(cause).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
