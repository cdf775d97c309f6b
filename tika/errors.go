package tika

import "errors"

// Sentinel errors classifying failures at the runtime boundary. Callers
// test with errors.Is; the message carries the foreign-side detail.
var (
	// ErrIO marks filesystem or network failures reported by the
	// foreign side while opening or reading a source.
	ErrIO = errors.New("tika: io error")

	// ErrParse marks content the foreign parser rejected.
	ErrParse = errors.New("tika: parse error")

	// ErrBridge marks a Java exception raised during a marshalled call,
	// described and cleared before being surfaced here.
	ErrBridge = errors.New("tika: bridge error")
)

// Result envelope status bytes, as set by the TikaNativeMain entry points.
const (
	statusOK        = 0
	statusIO        = 1
	statusParse     = 2 // also malformed URL
	statusURISyntax = 3
)
