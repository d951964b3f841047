package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/smart-budget/internal/bank"
	"github.com/Veraticus/smart-budget/internal/engine"
	"github.com/Veraticus/smart-budget/internal/storage"
)

func TestSeed(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	eng := engine.New(store, nil, nil, bank.NewMockLink(0))
	require.NoError(t, seed(context.Background(), eng))

	st := eng.State()
	assert.Len(t, st.Accounts, 3)
	assert.Len(t, st.Transactions, 15+len(manualEntries))
	assert.Len(t, st.Goals, 1)
	assert.InDelta(t, 3500, st.Goals[0].Current, 0.001)

	sum := eng.Summary()
	assert.True(t, sum.Unallocated.IsZero(), "allocations should cover the income")
}
