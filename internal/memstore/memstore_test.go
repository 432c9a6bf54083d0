package memstore_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"github.com/willabides/tomlkey"
	"github.com/willabides/tomlkey/internal/memstore"
)

func TestAppendBasenameAndIndexBasename(t *testing.T) {
	store := memstore.New("")
	root := store.NewKeyFromName("")
	a := store.AppendBasename(root, "a")
	ab := store.AppendBasename(a, "b")
	require.Equal(t, "a/b", ab.Name())

	idx := store.AppendIndexBasename(ab, 3)
	require.Equal(t, "a/b/#3", idx.Name())
}

func TestAppendBasenameEscapesSlash(t *testing.T) {
	store := memstore.New("")
	root := store.NewKeyFromName("")
	k := store.AppendBasename(root, "a/b")
	require.Equal(t, `a\/b`, k.Name())
}

func TestDupIsIndependent(t *testing.T) {
	store := memstore.New("")
	orig := store.NewKeyFromName("a")
	store.SetStringValue(orig, "1")
	store.SetMeta(orig, "type", "long_long")

	dup := store.Dup(orig)
	store.SetStringValue(dup, "2")

	v, ok := store.GetMeta(dup, "type")
	require.True(t, ok)
	require.Equal(t, "long_long", v)

	require.Equal(t, "a", dup.Name())
}

func TestLookupAndAppend(t *testing.T) {
	store := memstore.New("")
	k := store.NewKeyFromName("a")
	_, ok := store.Lookup("a")
	require.False(t, ok)

	require.NoError(t, store.Append(k))
	found, ok := store.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "a", found.Name())
}

func TestCompareNamesAndIsBelow(t *testing.T) {
	store := memstore.New("")
	a := store.NewKeyFromName("a")
	ab := store.NewKeyFromName("a/b")
	a2 := store.NewKeyFromName("a")

	require.Equal(t, 0, store.CompareNames(a, a2))
	require.True(t, store.CompareNames(a, ab) < 0)

	cases := []struct {
		name   string
		child  tomlkey.Key
		parent tomlkey.Key
		want   bool
	}{
		{name: "child is below parent", child: ab, parent: a, want: true},
		{name: "key is not below itself", child: a, parent: a, want: false},
		{name: "nested key is not below itself", child: ab, parent: ab, want: false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, store.IsBelow(tt.child, tt.parent))
		})
	}
}

func TestIncrefDecrefAndFree(t *testing.T) {
	store := memstore.New("")
	k := store.NewKeyFromName("a")
	store.Incref(k)
	require.Equal(t, 1, store.Decref(k))
	require.Equal(t, 0, store.Decref(k))
}

func TestSnapshotOrdersByOrderMeta(t *testing.T) {
	store := memstore.New("")
	b := store.NewKeyFromName("b")
	store.SetMeta(b, "order", "1")
	store.SetStringValue(b, "2")
	require.NoError(t, store.Append(b))

	a := store.NewKeyFromName("a")
	store.SetMeta(a, "order", "0")
	store.SetStringValue(a, "1")
	require.NoError(t, store.Append(a))

	snap := store.Snapshot()
	require.Len(t, snap, 2)
	require.Equal(t, "a", snap[0].Name)
	require.Equal(t, "b", snap[1].Name)
}

func TestSetErrorRecordsDiagnostic(t *testing.T) {
	store := memstore.New("")
	root := store.NewKeyFromName("")
	store.SetError(root, tomlkey.Semantic, tomlkey.Position{Line: 2, Column: 3}, "duplicate key")

	require.NoError(t, store.Append(root))
	snap := store.Snapshot()
	require.Len(t, snap, 1)
	require.Len(t, snap[0].Diagnostics, 1)
	require.Equal(t, "semantic", snap[0].Diagnostics[0].Kind)
	require.Equal(t, 2, snap[0].Diagnostics[0].Line)
	require.Equal(t, 3, snap[0].Diagnostics[0].Column)
	require.Equal(t, "duplicate key", snap[0].Diagnostics[0].Message)

	var _ tomlkey.ErrorReporter = store
}

// Golden-fixture style test: decode a snapshot to YAML and back,
// confirming the round trip preserves names, values and metadata.
func TestSnapshotYAMLRoundTrip(t *testing.T) {
	store := memstore.New("")
	k := store.NewKeyFromName("greeting")
	store.SetStringValue(k, "hello")
	store.SetMeta(k, "type", "string")
	store.SetMeta(k, "order", "0")
	require.NoError(t, store.Append(k))

	out, err := yaml.Marshal(store.Snapshot())
	require.NoError(t, err)

	var roundTripped []memstore.Snapshot
	require.NoError(t, yaml.Unmarshal(out, &roundTripped))
	require.Len(t, roundTripped, 1)
	require.Equal(t, "greeting", roundTripped[0].Name)
	require.Equal(t, "hello", roundTripped[0].Value)
	require.Equal(t, "string", roundTripped[0].Meta["type"])
}
