package tomlkey

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willabides/tomlkey/internal/memstore"
)

func TestErrorKindString(t *testing.T) {
	cases := []struct {
		name string
		kind ErrorKind
		want string
	}{
		{name: "semantic", kind: Semantic, want: "semantic"},
		{name: "syntactic", kind: Syntactic, want: "syntactic"},
		{name: "out of range", kind: ErrorKind(99), want: "unknown"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestDriverErrorMessageFormatting(t *testing.T) {
	cases := []struct {
		name     string
		err      *driverError
		contains []string
		want     string
	}{
		{
			name:     "positioned message",
			err:      &driverError{kind: Semantic, pos: Position{Line: 3, Column: 1}, end: Position{Line: 3, Column: 1}, msg: "bad key"},
			contains: []string{"line 3:1", "bad key"},
		},
		{
			name: "out of memory",
			err:  &driverError{kind: Memory},
			want: "tomlkey: out of memory",
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, s := range tt.contains {
				require.Contains(t, got, s)
			}
			if tt.want != "" {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRaiseLatchesAndReportsOnce(t *testing.T) {
	store := memstore.New("")
	d := newDriver(store, store.NewKeyFromName(""), store)
	defer d.destroy()

	d.raiseAt(Semantic, 5, "first problem")
	require.True(t, d.errorSet)
	require.Error(t, d.err)

	d.raiseAt(Internal, 6, "second problem, should be ignored")
	require.Contains(t, d.err.Error(), "first problem")
}
