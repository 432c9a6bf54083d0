package reflexer

import (
	"regexp"
	"strings"

	"github.com/willabides/tomlkey/internal/lexevent"
)

var (
	dateOnlyRE     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	datePrefixRE   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	offsetSuffixRE = regexp.MustCompile(`(?i)(z|[+-]\d{2}:\d{2})$`)
)

// classifyValue tags a reassembled unquoted value literal with its
// ScalarKind. It is a classification heuristic, not a validator: the
// driver's own translate.go / datetime.go do the real parsing and
// range checks once the kind is known.
func classifyValue(raw string) lexevent.ScalarKind {
	switch raw {
	case "true", "false":
		return lexevent.Boolean
	case "inf":
		return lexevent.FloatInf
	case "+inf":
		return lexevent.FloatPosInf
	case "-inf":
		return lexevent.FloatNegInf
	case "nan":
		return lexevent.FloatNaN
	case "+nan":
		return lexevent.FloatPosNaN
	case "-nan":
		return lexevent.FloatNegNaN
	}

	body, signed := raw, false
	if strings.HasPrefix(body, "+") || strings.HasPrefix(body, "-") {
		body = body[1:]
		signed = true
	}
	lower := strings.ToLower(body)
	if !signed {
		switch {
		case strings.HasPrefix(lower, "0x"):
			return lexevent.IntHex
		case strings.HasPrefix(lower, "0o"):
			return lexevent.IntOct
		case strings.HasPrefix(lower, "0b"):
			return lexevent.IntBin
		}
	}

	if looksLikeDatetime(raw) {
		return classifyDatetime(raw)
	}
	if strings.ContainsAny(body, ".eE") {
		return lexevent.FloatNum
	}
	return lexevent.IntDec
}

func looksLikeDatetime(raw string) bool {
	return strings.Contains(raw, ":") || dateOnlyRE.MatchString(raw)
}

func classifyDatetime(raw string) lexevent.ScalarKind {
	hasDate := datePrefixRE.MatchString(raw)
	hasTime := strings.Contains(raw, ":")
	switch {
	case hasDate && !hasTime:
		return lexevent.DateLocalDate
	case hasDate && hasTime:
		if offsetSuffixRE.MatchString(raw) {
			return lexevent.DateOffsetDateTime
		}
		return lexevent.DateLocalDateTime
	default:
		return lexevent.DateLocalTime
	}
}
