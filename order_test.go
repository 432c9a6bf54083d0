package tomlkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderCounterAllocateAndRollback(t *testing.T) {
	var o orderCounter
	require.Equal(t, 0, o.allocate())
	require.Equal(t, 1, o.allocate())
	o.rollback()
	require.Equal(t, 1, o.allocate())
}

func TestOrderCounterRollbackAtZero(t *testing.T) {
	var o orderCounter
	o.rollback()
	require.Equal(t, 0, o.allocate())
}

func TestFormatOrder(t *testing.T) {
	require.Equal(t, "42", formatOrder(42))
}
