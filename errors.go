package tomlkey

import (
	"fmt"

	"github.com/willabides/tomlkey/internal/lexevent"
)

// Position aliases the lexer's position type so diagnostics can carry
// lexer-sourced coordinates without the root package importing
// anything lexer-specific beyond the shared event contract.
type Position = lexevent.Position

// ErrorKind classifies a diagnostic the driver raises, matching
// spec.md §4.H / §7's five-kind taxonomy. It is grounded on the
// teacher's much simpler single-error-type model (decode.go's p.fail,
// a plain *error*); the taxonomy itself comes straight from spec.md.
type ErrorKind int8

const (
	Internal ErrorKind = iota
	Memory
	Syntactic
	Semantic
	Resource
)

func (k ErrorKind) String() string {
	switch k {
	case Internal:
		return "internal"
	case Memory:
		return "memory"
	case Syntactic:
		return "syntactic"
	case Semantic:
		return "semantic"
	case Resource:
		return "resource"
	default:
		return "unknown"
	}
}

// driverError is the in-process form of a raised diagnostic, kept on
// the driver until returned from Read. The positioned text matches the
// teacher's "line N: problem" convention (decode.go's p.fail), extended
// with a line range per spec.md §7.
type driverError struct {
	kind ErrorKind
	pos  Position
	end  Position
	msg  string
}

func (e *driverError) Error() string {
	if e.kind == Memory {
		return "tomlkey: out of memory"
	}
	if e.pos.Line == e.end.Line && e.pos.Column == e.end.Column {
		return fmt.Sprintf("tomlkey: %s error at line %d:%d: %s", e.kind, e.pos.Line, e.pos.Column, e.msg)
	}
	return fmt.Sprintf("tomlkey: %s error at line %d:%d-%d:%d: %s",
		e.kind, e.pos.Line, e.pos.Column, e.end.Line, e.end.Column, e.msg)
}

// raise records a diagnostic on the driver: it latches errorSet (so
// every subsequent handler short-circuits per spec.md §3 invariant 6
// and §7's "never recovered" policy), reports through the
// ErrorReporter if one was supplied, and stashes the error to return
// from Read.
func (d *driver) raise(kind ErrorKind, pos, end Position, format string, args ...interface{}) {
	if d.errorSet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	d.errorSet = true
	d.err = &driverError{kind: kind, pos: pos, end: end, msg: msg}
	if d.reporter != nil {
		if kind == Memory {
			d.reporter.SetOutOfMemory(d.rootKey)
		} else {
			d.reporter.SetError(d.rootKey, kind, pos, msg)
		}
	}
}

func (d *driver) raiseAt(kind ErrorKind, line int, format string, args ...interface{}) {
	pos := Position{Line: line}
	d.raise(kind, pos, pos, format, args...)
}
