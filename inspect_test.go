package timemarket

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInspect(t *testing.T) (Inspect, *Ledger, DB) {
	t.Helper()

	db := setupDatabase()
	ledger := NewLedger(db, approveAll(), &transferRecorder{})
	require.NoError(t, ledger.Initialize(context.Background()))

	inspect, err := NewInspect(db, ledger)
	require.NoError(t, err)
	return inspect, ledger, db
}

func TestInspect_Keyspaces(t *testing.T) {
	inspect, _, db := setupInspect(t)
	defer tearDownDatabase(t, db)

	keyspaces, err := inspect.Keyspaces()
	require.NoError(t, err)
	assert.Equal(t, []string{"meta", "token_counter", "tokens", "seller_tokens", "balances"}, keyspaces)
}

func TestInspect_TokenFields(t *testing.T) {
	inspect, _, db := setupInspect(t)
	defer tearDownDatabase(t, db)

	fields, err := inspect.TokenFields()
	require.NoError(t, err)
	assert.Contains(t, fields, "seller")
	assert.Contains(t, fields, "hourly_rate")
	assert.Contains(t, fields, "hours_available")
	assert.Contains(t, fields, "description")
}

func TestInspect_Stats(t *testing.T) {
	inspect, ledger, db := setupInspect(t)
	defer tearDownDatabase(t, db)

	ctx := context.Background()
	id1, err := ledger.Mint(ctx, "seller-a", big.NewInt(100), 40, "one")
	require.NoError(t, err)
	_, err = ledger.Mint(ctx, "seller-b", big.NewInt(100), 40, "two")
	require.NoError(t, err)
	require.NoError(t, ledger.DeleteToken(ctx, id1, "seller-a"))

	stats, err := inspect.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.TokenCount)
	assert.Equal(t, uint64(1), stats.ActiveTokens)
	assert.Equal(t, uint64(2), stats.Sellers)
}

func TestInspect_Sellers(t *testing.T) {
	inspect, ledger, db := setupInspect(t)
	defer tearDownDatabase(t, db)

	ctx := context.Background()
	_, err := ledger.Mint(ctx, "zeta", big.NewInt(1), 1, "z")
	require.NoError(t, err)
	_, err = ledger.Mint(ctx, "alpha", big.NewInt(1), 1, "a")
	require.NoError(t, err)

	sellers, err := inspect.Sellers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Identity{"alpha", "zeta"}, sellers)
}
