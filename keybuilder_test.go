package tomlkey

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willabides/tomlkey/internal/memstore"
)

func TestIsBareKeyString(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{name: "bare mix", in: "abc-123_XYZ", want: true},
		{name: "empty", in: "", want: false},
		{name: "dotted", in: "a.b", want: false},
		{name: "spaced", in: "a b", want: false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, isBareKeyString(tt.in))
		})
	}
}

func TestKeyBuilderAppendSegment(t *testing.T) {
	store := memstore.New("")
	root := store.NewKeyFromName("")
	b := newKeyBuilder(store, root)
	b.appendSegment("a").appendSegment("b")
	require.Equal(t, "a/b", b.result().Name())
}

func TestKeyBuilderAppendIndex(t *testing.T) {
	store := memstore.New("")
	root := store.NewKeyFromName("a")
	b := newKeyBuilder(store, root)
	b.appendIndex(3)
	require.Equal(t, "a/#3", b.result().Name())
}

func TestSplitFloatSegments(t *testing.T) {
	cases := []struct {
		name       string
		in         string
		wantFirst  string
		wantSecond string
		wantOK     bool
	}{
		{name: "plain decimal", in: "1.2", wantFirst: "1", wantSecond: "2", wantOK: true},
		{name: "exponent rejected", in: "1.2e3", wantOK: false},
		{name: "no dot", in: "nodot", wantOK: false},
		{name: "trailing dot", in: "1.", wantOK: false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			first, second, ok := splitFloatSegments(tt.in)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.wantFirst, first)
				require.Equal(t, tt.wantSecond, second)
			}
		})
	}
}
