// Package apperrors provides the error taxonomy used across the SkillSwap
// client. Errors are chainable: a kind sentinel such as ErrAPI can be
// specialised with a message and extra causes while still matching the
// sentinel through errors.Is.
package apperrors

// Error defines the interface for application errors. It extends the standard error
// interface with wrapping and status code management. All methods return Error
// to support method chaining.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // creates a new error using current as template
	Msg(msg string) Error                  // creates a new error with message and wraps original
	MsgErr(msg string, err ...error) Error // creates error with message and wraps extra errors
	Err(err ...error) Error                // attaches additional errors to current error
	SetStatusCode(int) Error               // sets HTTP status code for the error
	StatusCode() int                       // returns the current status code
	ErrorAll() string                      // returns full message including wrapped errors
}
