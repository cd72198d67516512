// Package errors provides the classified error primitives used across zimsite.
//
// Every failure surfaced by the conversion pipeline is a ClassifiedError carrying a
// category (what kind of thing failed), a severity, and structured context such as the
// article path or the URL that was fetched. The category drives the CLI exit code.
//
// Example usage:
//
//	err := errors.NetworkError("fetch live main page").
//		WithCause(cause).
//		WithContext("url", target.String()).
//		Build()
package errors
