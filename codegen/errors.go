/**
 * Copyright (c) 2026, The gqlcodegen Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package codegen

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Op describes an operation, usually as the package and method, such as "loader.LoadSchema".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of ErrKind.
const (
	ErrKindOther      ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindConfig                    // Invalid or unreadable generator configuration.
	ErrKindSchema                    // Failed to load or build the GraphQL schema.
	ErrKindDocument                  // Failed to read or parse an operation document.
	ErrKindValidation                // An operation document does not validate against the schema.
	ErrKindPlugin                    // A plugin rejected its input or failed to generate.
	ErrKindEmit                      // Generated output could not be assembled or formatted.
	ErrKindIO                        // External I/O error: file system or network.
	ErrKindInternal                  // Internal error.
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindConfig:
		return "config error"
	case ErrKindSchema:
		return "schema error"
	case ErrKindDocument:
		return "document error"
	case ErrKindValidation:
		return "validation error"
	case ErrKindPlugin:
		return "plugin error"
	case ErrKindEmit:
		return "emit error"
	case ErrKindIO:
		return "I/O error"
	case ErrKindInternal:
		return "internal error"
	}
	return "unknown error kind"
}

// ErrorLocation points at the position in a GraphQL source which an error corresponds to. File may
// be empty when the source is not file-backed (e.g., SDL reconstructed from an introspection
// result).
type ErrorLocation struct {
	File   string
	Line   int
	Column int
}

func (loc ErrorLocation) String() string {
	var b strings.Builder
	if loc.File != "" {
		b.WriteString(loc.File)
		b.WriteByte(':')
	}
	fmt.Fprintf(&b, "%d:%d", loc.Line, loc.Column)
	return b.String()
}

// ErrorWithLocations indicates an error that carries GraphQL source locations. If locations are
// not given in the arguments to NewError, NewError retrieves them from the underlying error (if
// provided) that implements this interface.
type ErrorWithLocations interface {
	Locations() []ErrorLocation
}

// An Error describes an error found during a generator run. It carries the Op and ErrKind which
// show when printing the error value, which makes the failing stage obvious without a stack trace.
type Error struct {
	// Message describes the error.
	Message string

	// Locations within the GraphQL sources which correspond to this error.
	Locs []ErrorLocation

	// The underlying error that triggered this one.
	Err error

	// Op is the operation being performed.
	Op Op

	// Kind is the class of error.
	Kind ErrKind
}

var (
	_ error              = (*Error)(nil)
	_ ErrorWithLocations = (*Error)(nil)
)

// Locations implements ErrorWithLocations.
func (e *Error) Locations() []ErrorLocation {
	return e.Locs
}

// Unwrap makes the underlying error visible to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an error value from arguments. Inspired by the design of upspin.io/errors [0].
// Accepted argument types: Op, ErrKind, ErrorLocation, []ErrorLocation and error.
//
// [0]: https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrorLocation:
			e.Locs = []ErrorLocation{arg}
		case []ErrorLocation:
			e.Locs = arg

		case error:
			e.Err = arg

		case Op:
			e.Op = arg

		case ErrKind:
			e.Kind = arg

		default:
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	// Propagate locations and kind from the underlying error when not given in arguments.
	prev := e.Err
	if prev != nil {
		if len(e.Locs) == 0 {
			if errWithLocations, ok := prev.(ErrorWithLocations); ok {
				e.Locs = errWithLocations.Locations()
			}
		}
		if e.Kind == ErrKindOther {
			if prev, ok := prev.(*Error); ok {
				e.Kind = prev.Kind
			}
		}
	}

	return e
}

// WrapError is a convenient wrapper to build an Error value from an underlying error with a
// message.
func WrapError(err error, message string) error {
	return NewError(message, err)
}

// WrapErrorf is similar to WrapError but with the format specifier.
func WrapErrorf(err error, format string, args ...interface{}) error {
	return NewError(fmt.Sprintf(format, args...), err)
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

func (e *Error) printError(b *strings.Builder, nextErr *Error) {
	initialLen := b.Len()

	// pad appends str to the buffer if the buffer already has some data.
	pad := func(str string) {
		if b.Len() == initialLen {
			return
		}
		b.WriteString(str)
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	if len(e.Message) > 0 {
		pad(": ")
		b.WriteString(e.Message)
	}

	if len(e.Locs) > 0 {
		// Don't print locations if the next error already did.
		if nextErr == nil || !equalLocations(nextErr.Locs, e.Locs) {
			if b.Len() == initialLen {
				b.WriteString("At ")
			} else {
				b.WriteString(" at ")
			}
			for i, loc := range e.Locs {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(loc.String())
			}
		}
	}

	if e.Kind != ErrKindOther {
		// Don't print kind if the next error has the same kind as ours.
		if nextErr == nil || nextErr.Kind != e.Kind {
			pad(": ")
			b.WriteString(e.Kind.String())
		}
	}

	if e.Err != nil {
		if prev, ok := e.Err.(*Error); ok {
			// Indent on new line if we are cascading non-empty Error.
			pad(":\n  ")
			prev.printError(b, e)
		} else {
			pad(": ")
			b.WriteString(e.Err.Error())
		}
	}
}

func equalLocations(a, b []ErrorLocation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

//===----------------------------------------------------------------------------------------====//
// Error list
//===----------------------------------------------------------------------------------------====//

// Errors collects multiple errors from one stage (typically validation) into a single error value.
type Errors struct {
	errs []error
}

// Append adds an error to the list. A nil error is ignored.
func (e *Errors) Append(err error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

// HaveOccurred returns true when the list contains at least one error.
func (e *Errors) HaveOccurred() bool {
	return len(e.errs) > 0
}

// Errs returns the collected errors.
func (e *Errors) Errs() []error {
	return e.errs
}

// Err returns the list as a single error value, or nil when no errors were collected.
func (e *Errors) Err() error {
	if len(e.errs) == 0 {
		return nil
	}
	return e
}

// Error implements Go's error interface. Each collected error is printed on its own line.
func (e *Errors) Error() string {
	messages := make([]string, len(e.errs))
	for i, err := range e.errs {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "\n")
}

// Unwrap exposes the collected errors to errors.Is and errors.As (Go 1.20 multi-error support).
func (e *Errors) Unwrap() []error {
	return e.errs
}

//===----------------------------------------------------------------------------------------====//
// gqlparser error conversion
//===----------------------------------------------------------------------------------------====//

// locationsFromGqlerror converts the position of a gqlparser error into ErrorLocations.
func locationsFromGqlerror(err *gqlerror.Error) []ErrorLocation {
	if err == nil || len(err.Locations) == 0 {
		return nil
	}
	locs := make([]ErrorLocation, len(err.Locations))
	for i, loc := range err.Locations {
		locs[i] = ErrorLocation{
			Line:   loc.Line,
			Column: loc.Column,
		}
	}
	return locs
}

// ConvertGqlError rewraps an error produced by gqlparser so it renders with file positions and the
// given kind. Lists are unpacked into an Errors value with one entry per underlying error.
func ConvertGqlError(op Op, kind ErrKind, sourceName string, err error) error {
	if err == nil {
		return nil
	}

	convertOne := func(gqlErr *gqlerror.Error) error {
		// gqlparser records the source file name in the error extensions.
		file, _ := gqlErr.Extensions["file"].(string)
		if file == "" {
			file = sourceName
		}
		locs := locationsFromGqlerror(gqlErr)
		for i := range locs {
			locs[i].File = file
		}
		return NewError(gqlErr.Message, op, kind, locs)
	}

	switch err := err.(type) {
	case gqlerror.List:
		if len(err) == 0 {
			return nil
		}
		var errs Errors
		for _, gqlErr := range err {
			errs.Append(convertOne(gqlErr))
		}
		return errs.Err()

	case *gqlerror.Error:
		return convertOne(err)
	}

	return NewError(err.Error(), op, kind)
}
