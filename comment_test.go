package tomlkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommentListPushAndPop(t *testing.T) {
	var l CommentList
	require.True(t, l.Empty())

	l.pushBlank()
	require.Equal(t, 1, l.Len())

	l.pushComment("hello", "hello", 2)
	require.Equal(t, 2, l.Len())

	entries := l.Entries()
	require.Len(t, entries, 2)
	require.Nil(t, entries[0].Text)
	require.Equal(t, "hello", *entries[1].Text)
	require.Equal(t, uint(2), entries[1].BlankLinesBefore)

	e, ok := l.popHead()
	require.True(t, ok)
	require.Nil(t, e.Text)
	require.Equal(t, 1, l.Len())

	e, ok = l.popHead()
	require.True(t, ok)
	require.Equal(t, "hello", *e.Text)
	require.True(t, l.Empty())

	_, ok = l.popHead()
	require.False(t, ok)
}

func TestCommentListAddSpacingToTail(t *testing.T) {
	var l CommentList
	l.pushComment("a", "a", 0)
	l.addSpacingToTail(3)
	entries := l.Entries()
	require.Equal(t, uint(3), entries[0].BlankLinesBefore)
}

func TestCommentListReset(t *testing.T) {
	var l CommentList
	l.pushComment("a", "a", 0)
	l.pushBlank()
	l.Reset()
	require.True(t, l.Empty())
	require.Equal(t, 0, l.Len())
}
