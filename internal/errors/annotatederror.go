// Package errors provides error annotation with slog attributes and source
// location capture. It re-exports the standard library helpers so callers
// only need one errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// annotatedError carries a message, optional wrapped error, slog attributes,
// and the source location where it was created.
type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// callerSource resolves the file:line of the caller skipping the given number
// of frames on top of callerSource itself.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	// Trim the path down to the file name to keep log lines short.
	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	return fmt.Sprintf("%s:%d", short, line)
}

// NewSentinel creates a new error without a wrapped cause. Use it for
// package-level sentinel errors that callers match with Is.
func NewSentinel(msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		err:    nil,
		attrs:  attrs,
		source: callerSource(1),
	}
}

// Wrap annotates err with a message and optional slog attributes. The source
// location of the Wrap call is recorded for logging with SlogError.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: callerSource(1),
	}
}

// SlogError converts an error into a slog.Attr suitable for structured
// logging. The attribute groups the error message, the source location of the
// innermost annotated error, and all annotations collected from the chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("<nil>")}
	}

	var (
		annotations []slog.Attr
		source      string
	)
	for unwrapped := err; unwrapped != nil; unwrapped = Unwrap(unwrapped) {
		if annotated, ok := unwrapped.(*annotatedError); ok {
			annotations = append(annotations, annotated.attrs...)
			source = annotated.source
		}
	}

	attrs := []any{slog.String("message", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		groupArgs := make([]any, len(annotations))
		for i, a := range annotations {
			groupArgs[i] = a
		}
		attrs = append(attrs, slog.Group("annotations", groupArgs...))
	}

	return slog.Group("error", attrs...)
}

// New returns an error that formats as the given text. See [errors.New].
func New(text string) error {
	return errors.New(text) //nolint:err113 // thin wrapper over the standard library.
}

// Is reports whether any error in err's tree matches target. See [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target. See [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err. See [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join wraps the given errors into a single error. See [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}
