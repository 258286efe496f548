// Package errs provides the typed errors shared by the domain, application and
// adapter layers.
//
// Every error kind follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrValueIsInvalid, ...) for errors.Is checks
//   - a struct carrying the offending parameter and an optional cause, for errors.As
//   - New...Error and New...ErrorWithCause constructors
//   - Unwrap returning the sentinel
//
// The HTTP adapter maps these kinds to status codes in a single place, so
// validation, not-found and concurrency failures are reported consistently.
package errs
