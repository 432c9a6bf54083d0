package tomlkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDateLeapYear(t *testing.T) {
	cases := []struct {
		name    string
		date    calendarDate
		wantErr bool
	}{
		{name: "leap day in leap year", date: calendarDate{Year: 2024, Month: 2, Day: 29}},
		{name: "leap day in non-leap year", date: calendarDate{Year: 2023, Month: 2, Day: 29}, wantErr: true},
		{name: "month out of range", date: calendarDate{Year: 2024, Month: 13, Day: 1}, wantErr: true},
		{name: "day out of range for month", date: calendarDate{Year: 2024, Month: 4, Day: 31}, wantErr: true},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDate(tt.date)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateTimeRanges(t *testing.T) {
	cases := []struct {
		name    string
		time    clockTime
		wantErr bool
	}{
		{name: "last second of day", time: clockTime{Hour: 23, Minute: 59, Second: 59}},
		{name: "leap second allowed", time: clockTime{Hour: 0, Minute: 0, Second: 60}},
		{name: "hour out of range", time: clockTime{Hour: 24}, wantErr: true},
		{name: "minute out of range", time: clockTime{Hour: 0, Minute: 60}, wantErr: true},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTime(tt.time)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTranslateDatetimeVariants(t *testing.T) {
	cases := []struct {
		name    string
		kind    ScalarKind
		in      string
		want    string
		wantErr bool
	}{
		{name: "local date", kind: DateLocalDate, in: "2024-01-02", want: "2024-01-02"},
		{name: "local time", kind: DateLocalTime, in: "03:04:05", want: "03:04:05"},
		{name: "local datetime", kind: DateLocalDateTime, in: "2024-01-02T03:04:05", want: "2024-01-02T03:04:05"},
		{name: "offset datetime normalizes fraction and zone", kind: DateOffsetDateTime, in: "2024-01-02T03:04:05.5z", want: "2024-01-02T03:04:05.5Z"},
		{name: "invalid calendar date", kind: DateLocalDate, in: "2024-02-30", wantErr: true},
		{name: "kind mismatch", kind: DateLocalDate, in: "2024-01-02T03:04:05", wantErr: true},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			v, err := translateDatetime(tt.kind, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestCanonicalClockTrimsTrailingZeros(t *testing.T) {
	cases := []struct {
		name  string
		clock clockTime
		want  string
	}{
		{name: "whole seconds", clock: clockTime{Hour: 3, Minute: 4, Second: 5}, want: "03:04:05"},
		{name: "fractional seconds", clock: clockTime{Hour: 3, Minute: 4, Second: 5, Nanosecond: 500000000}, want: "03:04:05.5"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, canonicalClock(tt.clock))
		})
	}
}
