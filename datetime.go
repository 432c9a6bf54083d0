package tomlkey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(month, year int) int {
	if month < 1 || month > 12 {
		return 0
	}
	table := [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return table[month-1]
}

// calendarDate is the decomposed form of a TOML date or datetime
// literal, validated field by field per spec.md §4.E.
type calendarDate struct {
	Year, Month, Day int
}

type clockTime struct {
	Hour, Minute, Second, Nanosecond int
}

// validateDate checks month/day ranges including the leap-year rule.
func validateDate(d calendarDate) error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("invalid month %d", d.Month)
	}
	max := daysIn(d.Month, d.Year)
	if d.Day < 1 || d.Day > max {
		return fmt.Errorf("invalid day %d for month %d", d.Day, d.Month)
	}
	return nil
}

// validateTime checks hour/minute/second ranges. A leap second (second
// == 60) is tolerated rather than rejected; spec.md §4.E documents
// "optional leap second handling" as a TODO in the original source, so
// we preserve that laxity rather than invent a stricter rule here.
// TODO: decide whether second==60 should be rejected outside the last
// minute of a UTC day; the upstream TOML driver never made that call
// either.
func validateTime(t clockTime) error {
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("invalid hour %d", t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("invalid minute %d", t.Minute)
	}
	if t.Second < 0 || t.Second > 60 {
		return fmt.Errorf("invalid second %d", t.Second)
	}
	return nil
}

// validateDatetimeScalar validates a scalar already known to be one of
// the four datetime kinds, dispatching on kind to the relevant field
// checks. The original text is assumed already segmented into
// calendarDate/clockTime by parseDatetimeParts (called from
// translateDatetime and from the driver's exitValue); callers pass the
// parsed parts directly so this
// function has no parsing concerns of its own.
func validateDatetimeScalar(kind ScalarKind, date calendarDate, clock clockTime) error {
	switch kind {
	case DateLocalDate:
		return validateDate(date)
	case DateLocalTime:
		return validateTime(clock)
	case DateLocalDateTime, DateOffsetDateTime:
		if err := validateDate(date); err != nil {
			return err
		}
		return validateTime(clock)
	default:
		return fmt.Errorf("not a datetime scalar kind: %s", scalarKindString(kind))
	}
}

var datetimeRE = regexp.MustCompile(
	`^(?:(\d{4})-(\d{2})-(\d{2}))?[T t]?(?:(\d{2}):(\d{2}):(\d{2})(\.\d+)?)?(Z|z|[+-]\d{2}:\d{2})?$`)

// parseDatetimeParts parses a raw datetime/date/time literal into its
// calendar and clock components plus the offset text (empty for local
// forms), without validating ranges; validateDatetimeScalar does that
// separately so the two concerns (parsing shape vs. semantic validity)
// stay independent per component E's single responsibility.
func parseDatetimeParts(kind ScalarKind, original string) (calendarDate, clockTime, string, error) {
	m := datetimeRE.FindStringSubmatch(original)
	if m == nil {
		return calendarDate{}, clockTime{}, "", fmt.Errorf("tomlkey: malformed datetime literal %q", original)
	}
	var date calendarDate
	var clock clockTime
	if m[1] != "" {
		date.Year, _ = strconv.Atoi(m[1])
		date.Month, _ = strconv.Atoi(m[2])
		date.Day, _ = strconv.Atoi(m[3])
	}
	if m[4] != "" {
		clock.Hour, _ = strconv.Atoi(m[4])
		clock.Minute, _ = strconv.Atoi(m[5])
		clock.Second, _ = strconv.Atoi(m[6])
		if m[7] != "" {
			frac := m[7][1:]
			for len(frac) < 9 {
				frac += "0"
			}
			clock.Nanosecond, _ = strconv.Atoi(frac[:9])
		}
	}
	switch kind {
	case DateLocalDate:
		if m[1] == "" || m[4] != "" {
			return date, clock, "", fmt.Errorf("tomlkey: %q is not a local date", original)
		}
	case DateLocalTime:
		if m[4] == "" || m[1] != "" {
			return date, clock, "", fmt.Errorf("tomlkey: %q is not a local time", original)
		}
	case DateLocalDateTime:
		if m[1] == "" || m[4] == "" || m[8] != "" {
			return date, clock, "", fmt.Errorf("tomlkey: %q is not a local date-time", original)
		}
	case DateOffsetDateTime:
		if m[1] == "" || m[4] == "" || m[8] == "" {
			return date, clock, "", fmt.Errorf("tomlkey: %q is not an offset date-time", original)
		}
	}
	return date, clock, m[8], nil
}

// canonicalDatetime reformats a validated datetime literal into
// canonical RFC-3339 form per spec.md §4.F: 'T' separator, uppercase
// 'Z', zero-padded fields, fractional seconds kept to nanosecond
// precision with trailing zeros trimmed.
func canonicalDatetime(kind ScalarKind, date calendarDate, clock clockTime, offset string) string {
	switch kind {
	case DateLocalDate:
		return fmt.Sprintf("%04d-%02d-%02d", date.Year, date.Month, date.Day)
	case DateLocalTime:
		return canonicalClock(clock)
	case DateLocalDateTime:
		return fmt.Sprintf("%04d-%02d-%02dT%s", date.Year, date.Month, date.Day, canonicalClock(clock))
	case DateOffsetDateTime:
		off := offset
		if off == "z" {
			off = "Z"
		}
		return fmt.Sprintf("%04d-%02d-%02dT%s%s", date.Year, date.Month, date.Day, canonicalClock(clock), off)
	default:
		return ""
	}
}

func canonicalClock(t clockTime) string {
	base := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond == 0 {
		return base
	}
	frac := fmt.Sprintf("%09d", t.Nanosecond)
	frac = strings.TrimRight(frac, "0")
	return base + "." + frac
}

// translateDatetime is component F's entry point for the four
// datetime kinds: parse, validate, then reformat to canonical form.
func translateDatetime(kind ScalarKind, original string) (string, error) {
	date, clock, offset, err := parseDatetimeParts(kind, original)
	if err != nil {
		return "", err
	}
	if err := validateDatetimeScalar(kind, date, clock); err != nil {
		return "", fmt.Errorf("tomlkey: %w", err)
	}
	return canonicalDatetime(kind, date, clock, offset), nil
}
