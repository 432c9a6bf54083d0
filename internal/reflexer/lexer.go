package reflexer

import "github.com/willabides/tomlkey/internal/lexevent"

// Lexer is a reference tomlkey.EventSource: it scans and parses an
// entire TOML document up front, then serves the resulting event
// sequence one event at a time through Next, mirroring the shape of
// the teacher's own Parse(parser) function (a stateful type with a
// single "give me the next event" method).
type Lexer struct {
	events []lexevent.Event
	idx    int
}

// New scans and parses src, returning a ready-to-drive Lexer. A
// non-nil error indicates a lexical or grammar failure in src itself
// (unterminated string, unbalanced brackets, and the like); it never
// reflects a semantic error, since reflexer does no type-checking or
// datetime/number validation of its own — that is the driver's job.
func New(src string) (*Lexer, error) {
	toks, err := scan(src)
	if err != nil {
		return nil, err
	}
	events, err := parseDocument(toks)
	if err != nil {
		return nil, err
	}
	return &Lexer{events: events}, nil
}

// Next implements tomlkey.EventSource.
func (l *Lexer) Next() (lexevent.Event, error) {
	if l.idx >= len(l.events) {
		return lexevent.Event{Type: lexevent.NoEvent}, nil
	}
	ev := l.events[l.idx]
	l.idx++
	return ev, nil
}
