// Package lexevent defines the event stream contract between the
// external TOML lexer/grammar front end (out of scope per spec.md §1,
// §6) and the driver that consumes it. It mirrors the shape of the
// teacher's internal/yamlh event types (EventType, Event, Position)
// generalized from YAML's grammar productions to TOML's.
package lexevent

import "fmt"

// Position is a single point in the source, matching the teacher's
// yamlh.Position (Index/Line/Column), reused here for both scalar
// positions and error spans.
type Position struct {
	Index  int
	Line   int
	Column int
}

// ScalarKind tags the lexical form of a scalar literal as produced by
// the lexer. See scalar.go in the root package for the authoritative
// list; it is defined here (not in the root package) so that Event can
// reference it without an import cycle between the driver and its
// lexer contract.
type ScalarKind int8

const (
	StringBasic ScalarKind = iota
	StringLiteral
	StringMLBasic
	StringMLLiteral
	StringBare

	IntDec
	IntBin
	IntOct
	IntHex

	FloatNum
	FloatPosInf
	FloatNegInf
	FloatInf
	FloatPosNaN
	FloatNegNaN
	FloatNaN

	Boolean

	DateOffsetDateTime
	DateLocalDateTime
	DateLocalDate
	DateLocalTime
)

// EventType enumerates the grammar productions the driver handles, one
// event per §4.G handler. Unlike the teacher's YAML event set (stream
// start/end, document start/end, alias, scalar, sequence/mapping
// start/end) this event set is TOML-shaped: keys, simple tables, table
// arrays, inline tables, arrays, array elements, and the comment/
// newline bookkeeping events spec.md §4.G documents explicitly.
type EventType int8

const (
	NoEvent EventType = iota

	EnterToml
	ExitToml

	EnterKey
	ExitKey
	ExitSimpleKey

	ExitValue
	ExitKeyValue

	EnterSimpleTable
	ExitSimpleTable

	EnterTableArray
	ExitTableArray

	EnterInlineTable
	ExitInlineTable
	EmptyInlineTable

	EnterArray
	ExitArray
	EmptyArray

	EnterArrayElement
	ExitArrayElement

	ExitComment
	ExitNewline
	ExitOptCommentKeyPair
	ExitOptCommentTable
)

var eventNames = [...]string{
	NoEvent:               "none",
	EnterToml:             "enter toml",
	ExitToml:              "exit toml",
	EnterKey:              "enter key",
	ExitKey:               "exit key",
	ExitSimpleKey:         "exit simple key",
	ExitValue:             "exit value",
	ExitKeyValue:          "exit keyvalue",
	EnterSimpleTable:      "enter simple table",
	ExitSimpleTable:       "exit simple table",
	EnterTableArray:       "enter table array",
	ExitTableArray:        "exit table array",
	EnterInlineTable:      "enter inline table",
	ExitInlineTable:       "exit inline table",
	EmptyInlineTable:      "empty inline table",
	EnterArray:            "enter array",
	ExitArray:             "exit array",
	EmptyArray:            "empty array",
	EnterArrayElement:     "enter array element",
	ExitArrayElement:      "exit array element",
	ExitComment:           "exit comment",
	ExitNewline:           "exit newline",
	ExitOptCommentKeyPair: "exit opt comment keypair",
	ExitOptCommentTable:   "exit opt comment table",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventNames[e]
}

// Event is one grammar callback raised by the lexer/parser front end.
// Only the fields relevant to the event's kind are populated, matching
// the teacher's Event struct (which likewise overlays every event kind
// onto one struct rather than a tagged union per production).
type Event struct {
	Type EventType

	// Position of the event, used for positioned diagnostics.
	Start Position
	End   Position

	// Populated for ExitSimpleKey, ExitValue, ExitComment: the scalar
	// literal's source text and line, named ScalarKind/Value to avoid
	// importing the root package's Scalar type here. Value is always
	// the literal's raw source text (what the root package's Scalar
	// calls Original); canonicalization happens downstream in the
	// scalar translator.
	ScalarKind ScalarKind
	Value      string
	Line       int
}
