package tomlkey

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willabides/tomlkey/internal/memstore"
)

func TestParentStackPushPopOrder(t *testing.T) {
	store := memstore.New("")
	d := newDriver(store, store.NewKeyFromName(""), nil)
	defer d.destroy()

	a := store.NewKeyFromName("a")
	b := store.NewKeyFromName("a/b")
	d.pushParent(a)
	d.pushParent(b)

	require.Equal(t, "a/b", d.topParent().Name())
	popped := d.popParent()
	require.Equal(t, "a/b", popped.Name())
	require.Equal(t, "a", d.topParent().Name())
}

func TestIndexStackPushPop(t *testing.T) {
	store := memstore.New("")
	d := newDriver(store, store.NewKeyFromName(""), nil)
	defer d.destroy()

	d.pushIndex(0)
	d.pushIndex(5)
	require.Equal(t, uint(5), d.topIndex().Value)
	f := d.popIndex()
	require.Equal(t, uint(5), f.Value)
	require.Equal(t, uint(0), d.topIndex().Value)
}

func TestTableArrayStackFindAndPop(t *testing.T) {
	store := memstore.New("")
	d := newDriver(store, store.NewKeyFromName(""), nil)
	defer d.destroy()

	a := store.NewKeyFromName("a")
	d.pushTableArray(a)
	require.NotNil(t, d.findTableArrayFrame("a"))
	require.Nil(t, d.findTableArrayFrame("b"))

	f := d.popTableArray()
	require.Equal(t, "a", f.Key.Name())
	require.Nil(t, d.topTableArray())
}
