// Package tomlkey implements a TOML-to-keyed-configuration driver: a
// parser driver that consumes a TOML document (via an external
// lexer/grammar front end, see internal/lexevent) and emits a flat,
// ordered collection of fully qualified configuration keys carrying
// typed string values and rich metadata.
//
// The driver is strictly single-threaded and synchronous over one
// document (spec.md §5); a single Store must not be shared across
// concurrent Read calls, the same way the teacher's own yaml.Node
// decoder is not meant to be driven from two goroutines at once.
package tomlkey

import (
	"github.com/willabides/tomlkey/internal/lexevent"
)

// EventSource is the external lexer/grammar front end's contract:
// anything that can pump a sequence of lexevent.Event values (in
// grammar order) into Read. internal/reflexer implements this for a
// usable reference front end; production front ends may implement it
// directly over a hand-rolled TOML tokenizer.
type EventSource interface {
	// Next returns the next event, or ev.Type == lexevent.NoEvent with
	// err == nil at end of stream. A non-nil err is a failure from the
	// front end itself (e.g. a malformed token or a file read failure).
	// Read reports every such err as a Syntactic error through the same
	// ErrorReporter Read was given; read failures are not reported with
	// the Resource kind.
	Next() (lexevent.Event, error)
}

// Read is the public entry point (component G's `read` operation,
// spec.md §6). It drains events from src, applying each to the driver
// state machine, and returns the first error encountered (if any). On
// return, store is populated with all successfully processed keys up
// to the first error — processing is best-effort on partial emission,
// per spec.md §6.
//
// reporter may be nil; when non-nil it additionally receives positioned
// diagnostics via SetError/SetOutOfMemory as the first error is raised.
func Read(src EventSource, store Store, rootKey Key, reporter ErrorReporter) error {
	d := newDriver(store, rootKey, reporter)
	defer d.destroy()

	for {
		ev, err := src.Next()
		if err != nil {
			d.raise(Syntactic, ev.Start, ev.End, "%v", err)
			break
		}
		if ev.Type == lexevent.NoEvent {
			break
		}
		d.consume(ev)
		if d.errorSet {
			break
		}
	}

	return d.err
}
