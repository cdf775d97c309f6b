package extractous

import (
	"errors"
	"fmt"

	"github.com/sangam14/extractous/tika"
)

// ErrorKind classifies extraction failures.
type ErrorKind string

const (
	// KindIO marks filesystem or network failures opening or reading a
	// source.
	KindIO ErrorKind = "io"

	// KindParse marks content a parser rejected.
	KindParse ErrorKind = "parse"

	// KindBridge marks a foreign-runtime exception, described and
	// cleared at the boundary before being translated here.
	KindBridge ErrorKind = "bridge"

	// KindEncoding marks invalid text encoding encountered during a
	// UTF-8-sensitive operation.
	KindEncoding ErrorKind = "encoding"

	// KindConfig marks invalid or out-of-range configuration.
	KindConfig ErrorKind = "config"
)

// Error is the typed error returned by all extraction operations.
type Error struct {
	Kind ErrorKind
	Op   string // operation that failed, e.g. "extract file"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extractous: %s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an extraction Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ee *Error
	return errors.As(err, &ee) && ee.Kind == kind
}

func ioError(op string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Err: err}
}

func parseError(op string, err error) *Error {
	return &Error{Kind: KindParse, Op: op, Err: err}
}

func encodingError(op string, err error) *Error {
	return &Error{Kind: KindEncoding, Op: op, Err: err}
}

func configError(op string, err error) *Error {
	return &Error{Kind: KindConfig, Op: op, Err: err}
}

// bridgeError classifies an error surfaced by the tika package: IO and
// parse failures reported through the result envelope keep their kind,
// everything else (translated exceptions, marshalling failures) is a
// bridge error.
func bridgeError(op string, err error) *Error {
	kind := KindBridge
	switch {
	case errors.Is(err, tika.ErrIO):
		kind = KindIO
	case errors.Is(err, tika.ErrParse):
		kind = KindParse
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
