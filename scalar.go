package tomlkey

import "github.com/willabides/tomlkey/internal/lexevent"

// ScalarKind tags the lexical form a TOML literal was written in. The
// driver needs the distinction to decide simple-key acceptance,
// datetime validation, and the metadata it stamps on a committed value;
// downstream consumers only ever see the normalized string. Defined in
// internal/lexevent (the lexer's event contract) and aliased here so
// the driver and its lexer share one vocabulary without a cycle.
type ScalarKind = lexevent.ScalarKind

const (
	StringBasic     = lexevent.StringBasic
	StringLiteral   = lexevent.StringLiteral
	StringMLBasic   = lexevent.StringMLBasic
	StringMLLiteral = lexevent.StringMLLiteral
	StringBare      = lexevent.StringBare

	IntDec = lexevent.IntDec
	IntBin = lexevent.IntBin
	IntOct = lexevent.IntOct
	IntHex = lexevent.IntHex

	FloatNum    = lexevent.FloatNum
	FloatPosInf = lexevent.FloatPosInf
	FloatNegInf = lexevent.FloatNegInf
	FloatInf    = lexevent.FloatInf
	FloatPosNaN = lexevent.FloatPosNaN
	FloatNegNaN = lexevent.FloatNegNaN
	FloatNaN    = lexevent.FloatNaN

	Boolean = lexevent.Boolean

	DateOffsetDateTime = lexevent.DateOffsetDateTime
	DateLocalDateTime  = lexevent.DateLocalDateTime
	DateLocalDate      = lexevent.DateLocalDate
	DateLocalTime      = lexevent.DateLocalTime
)

var scalarKindNames = map[ScalarKind]string{
	StringBasic:        "string_basic",
	StringLiteral:      "string_literal",
	StringMLBasic:      "string_ml_basic",
	StringMLLiteral:    "string_ml_literal",
	StringBare:         "string_bare",
	IntDec:             "int_dec",
	IntBin:             "int_bin",
	IntOct:             "int_oct",
	IntHex:             "int_hex",
	FloatNum:           "float",
	FloatPosInf:        "float_pos_inf",
	FloatNegInf:        "float_neg_inf",
	FloatInf:           "float_inf",
	FloatPosNaN:        "float_pos_nan",
	FloatNegNaN:        "float_neg_nan",
	FloatNaN:           "float_nan",
	Boolean:            "boolean",
	DateOffsetDateTime: "date_offset_datetime",
	DateLocalDateTime:  "date_local_datetime",
	DateLocalDate:      "date_local_date",
	DateLocalTime:      "date_local_time",
}

func scalarKindString(k ScalarKind) string {
	if s, ok := scalarKindNames[k]; ok {
		return s
	}
	return "unknown"
}

func isStringKind(k ScalarKind) bool {
	switch k {
	case StringBasic, StringLiteral, StringMLBasic, StringMLLiteral, StringBare:
		return true
	}
	return false
}

func isMultilineKind(k ScalarKind) bool {
	return k == StringMLBasic || k == StringMLLiteral
}

func isFloatKind(k ScalarKind) bool {
	switch k {
	case FloatNum, FloatPosInf, FloatNegInf, FloatInf, FloatPosNaN, FloatNegNaN, FloatNaN:
		return true
	}
	return false
}

func isDateKind(k ScalarKind) bool {
	switch k {
	case DateOffsetDateTime, DateLocalDateTime, DateLocalDate, DateLocalTime:
		return true
	}
	return false
}

func isDecimalIntKind(k ScalarKind) bool {
	return k == IntDec
}

func isUnsignedIntKind(k ScalarKind) bool {
	return k == IntBin || k == IntOct || k == IntHex
}

// Scalar is a single TOML literal value together with its source form
// and position, as produced by the external lexer/grammar front end
// and consumed by the driver's value and key handlers.
type Scalar struct {
	Kind       ScalarKind
	Normalized string
	Original   string
	Line       int
}
