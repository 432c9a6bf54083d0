package tomlkey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// translateScalar maps a scalar literal to its canonical stored string
// (component F, spec.md §4.F). It returns a freshly computed string;
// the caller is responsible for stamping origvalue metadata when the
// result differs from the scalar's Original text.
func translateScalar(s Scalar) (string, error) {
	switch {
	case isStringKind(s.Kind):
		return translateString(s)
	case s.Kind == Boolean:
		return translateBool(s.Original)
	case s.Kind == IntDec:
		return translateDecimalInt(s.Original)
	case isUnsignedIntKind(s.Kind):
		return translateUnsignedInt(s.Kind, s.Original)
	case isFloatKind(s.Kind):
		return translateFloat(s.Kind, s.Original)
	case isDateKind(s.Kind):
		return translateDatetime(s.Kind, s.Original)
	default:
		return "", fmt.Errorf("tomlkey: unknown scalar kind %s", scalarKindString(s.Kind))
	}
}

func translateBool(original string) (string, error) {
	switch original {
	case "true":
		return "1", nil
	case "false":
		return "0", nil
	default:
		return "", fmt.Errorf("tomlkey: invalid boolean literal %q", original)
	}
}

func stripDigitSeparators(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	return strings.ReplaceAll(s, "_", "")
}

func translateDecimalInt(original string) (string, error) {
	plain := stripDigitSeparators(original)
	v, err := strconv.ParseInt(plain, 10, 64)
	if err != nil {
		return "", fmt.Errorf("tomlkey: invalid decimal integer %q: %w", original, err)
	}
	return strconv.FormatInt(v, 10), nil
}

func translateUnsignedInt(kind ScalarKind, original string) (string, error) {
	plain := stripDigitSeparators(original)
	var base int
	switch kind {
	case IntBin:
		base = 2
		plain = strings.TrimPrefix(plain, "0b")
	case IntOct:
		base = 8
		plain = strings.TrimPrefix(plain, "0o")
	case IntHex:
		base = 16
		plain = strings.TrimPrefix(plain, "0x")
	default:
		return "", fmt.Errorf("tomlkey: not an unsigned-int kind: %s", scalarKindString(kind))
	}
	v, err := strconv.ParseUint(plain, base, 64)
	if err != nil {
		return "", fmt.Errorf("tomlkey: invalid %s integer %q: %w", scalarKindString(kind), original, err)
	}
	return strconv.FormatUint(v, 10), nil
}

func translateFloat(kind ScalarKind, original string) (string, error) {
	switch kind {
	case FloatPosInf, FloatInf:
		return "inf", nil
	case FloatNegInf:
		return "-inf", nil
	case FloatPosNaN, FloatNaN:
		return "nan", nil
	case FloatNegNaN:
		return "-nan", nil
	}
	plain := stripDigitSeparators(original)
	v, err := strconv.ParseFloat(plain, 64)
	if err != nil {
		return "", fmt.Errorf("tomlkey: invalid float %q: %w", original, err)
	}
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

// basicEscapeRE matches a single backslash escape sequence as defined
// by TOML for basic strings.
var basicEscapeRE = regexp.MustCompile(`\\(.)`)

func translateString(s Scalar) (string, error) {
	switch s.Kind {
	case StringLiteral:
		return s.Original, nil
	case StringMLLiteral:
		return trimLeadingNewline(s.Original), nil
	case StringBasic:
		return unescapeBasic(s.Original, false)
	case StringMLBasic:
		return unescapeBasic(trimLeadingNewline(s.Original), true)
	case StringBare:
		return s.Original, nil
	default:
		return "", fmt.Errorf("tomlkey: not a string kind: %s", scalarKindString(s.Kind))
	}
}

func trimLeadingNewline(s string) string {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return s[2:]
	case strings.HasPrefix(s, "\n"):
		return s[1:]
	default:
		return s
	}
}

// unescapeBasic processes \b \t \n \f \r \" \\ \uXXXX \UXXXXXXXX escapes
// per TOML. In multiline mode it additionally honors a backslash
// immediately followed by a newline (and any further whitespace) as a
// line-continuation that is removed entirely, per spec.md §4.F.
func unescapeBasic(s string, multiline bool) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("tomlkey: dangling escape at end of string")
		}
		next := s[i+1]
		if multiline && (next == '\n' || next == '\r' || next == ' ' || next == '\t') {
			j := i + 1
			sawNewline := false
			for j < len(s) {
				switch s[j] {
				case ' ', '\t', '\r':
					j++
					continue
				case '\n':
					sawNewline = true
					j++
					continue
				}
				break
			}
			if !sawNewline {
				return "", fmt.Errorf("tomlkey: invalid escape sequence %q", s[i:i+2])
			}
			i = j
			continue
		}
		switch next {
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case '"':
			b.WriteByte('"')
			i += 2
		case '\\':
			b.WriteByte('\\')
			i += 2
		case 'u':
			r, n, err := readUnicodeEscape(s, i+2, 4)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += 2 + n
		case 'U':
			r, n, err := readUnicodeEscape(s, i+2, 8)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += 2 + n
		default:
			return "", fmt.Errorf("tomlkey: invalid escape sequence \\%c", next)
		}
	}
	return b.String(), nil
}

func readUnicodeEscape(s string, start, width int) (rune, int, error) {
	if start+width > len(s) {
		return 0, 0, fmt.Errorf("tomlkey: truncated unicode escape")
	}
	v, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("tomlkey: invalid unicode escape %q: %w", s[start:start+width], err)
	}
	return rune(v), width, nil
}
