package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handreplay/internal/handtest"
)

func TestHandStore(t *testing.T) {
	t.Parallel()
	store, err := NewHandStore(2)
	require.NoError(t, err)

	cash := handtest.Parse(t, handtest.CashSixMax)
	hu := handtest.Parse(t, handtest.HeadsUp)
	split := handtest.Parse(t, handtest.SplitPot)

	assert.False(t, store.Put(cash))
	assert.True(t, store.Put(cash), "same id is already known")
	assert.False(t, store.Put(hu))

	got, ok := store.Get(cash.HandID)
	require.True(t, ok)
	assert.Same(t, cash, got)

	// cash was used most recently, so hu is evicted.
	assert.False(t, store.Put(split))
	assert.Equal(t, 2, store.Len())
	_, ok = store.Get(hu.HandID)
	assert.False(t, ok)
	_, ok = store.Get(split.HandID)
	assert.True(t, ok)
}
