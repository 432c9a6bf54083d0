package tomlkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslateBool(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "true", in: "true", want: "1"},
		{name: "false", in: "false", want: "0"},
		{name: "invalid", in: "maybe", wantErr: true},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			v, err := translateBool(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestTranslateDecimalInt(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "42", want: "42"},
		{name: "underscored", in: "1_000_000", want: "1000000"},
		{name: "negative", in: "-17", want: "-17"},
		{name: "not a number", in: "not-a-number", wantErr: true},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			v, err := translateDecimalInt(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestTranslateUnsignedInt(t *testing.T) {
	cases := []struct {
		name    string
		kind    ScalarKind
		in      string
		want    string
		wantErr bool
	}{
		{name: "hex", kind: IntHex, in: "0xFF", want: "255"},
		{name: "octal", kind: IntOct, in: "0o17", want: "15"},
		{name: "binary", kind: IntBin, in: "0b1010", want: "10"},
		{name: "wrong kind", kind: IntDec, in: "10", wantErr: true},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			v, err := translateUnsignedInt(tt.kind, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestTranslateFloat(t *testing.T) {
	cases := []struct {
		name string
		kind ScalarKind
		in   string
		want string
	}{
		{name: "trailing zeros trimmed", kind: FloatNum, in: "3.1400", want: "3.14"},
		{name: "inf", kind: FloatInf, in: "inf", want: "inf"},
		{name: "negative inf", kind: FloatNegInf, in: "-inf", want: "-inf"},
		{name: "nan", kind: FloatNaN, in: "nan", want: "nan"},
		{name: "negative nan", kind: FloatNegNaN, in: "-nan", want: "-nan"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			v, err := translateFloat(tt.kind, tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestTranslateStringKinds(t *testing.T) {
	cases := []struct {
		name string
		kind ScalarKind
		orig string
		want string
	}{
		{name: "literal keeps backslashes", kind: StringLiteral, orig: `C:\temp`, want: `C:\temp`},
		{name: "basic unescapes", kind: StringBasic, orig: `hi\nthere`, want: "hi\nthere"},
		{name: "multiline literal drops leading newline", kind: StringMLLiteral, orig: "\nfirst\nsecond", want: "first\nsecond"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			v, err := translateString(Scalar{Kind: tt.kind, Original: tt.orig})
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestUnescapeBasicEscapes(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "common escapes", in: `\t\n\"\\`, want: "\t\n\"\\"},
		{name: "unicode escape", in: `\u0041`, want: "A"},
		{name: "unknown escape", in: `\q`, wantErr: true},
		{name: "dangling backslash", in: `\`, wantErr: true},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			v, err := unescapeBasic(tt.in, false)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestUnescapeBasicLineContinuation(t *testing.T) {
	v, err := unescapeBasic("a\\\n   b", true)
	require.NoError(t, err)
	require.Equal(t, "ab", v)
}
