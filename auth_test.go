package timemarket

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowList_Authorize(t *testing.T) {
	allow := NewAllowList("seller-a")
	ctx := context.Background()

	require.NoError(t, allow.Authorize(ctx, "seller-a", NewOpContext(OpMint, 0)))
	require.ErrorIs(t, allow.Authorize(ctx, "seller-b", NewOpContext(OpMint, 0)), ErrNotAuthorized)

	allow.Allow("seller-b")
	require.NoError(t, allow.Authorize(ctx, "seller-b", NewOpContext(OpPurchase, 1)))

	allow.Revoke("seller-a")
	require.ErrorIs(t, allow.Authorize(ctx, "seller-a", NewOpContext(OpDeleteToken, 1)), ErrNotAuthorized)
}

func TestOpContext_InvocationIDs(t *testing.T) {
	first := NewOpContext(OpPurchase, 7)
	second := NewOpContext(OpPurchase, 7)

	assert.Equal(t, OpPurchase, first.Operation)
	assert.Equal(t, uint64(7), first.TokenID)
	assert.NotEqual(t, uuid.Nil, first.InvocationID)

	// same operation, distinct invocations
	assert.NotEqual(t, first.InvocationID, second.InvocationID)
}

func TestLedger_AuthorizerSeesOperationContext(t *testing.T) {
	db := setupDatabase()
	defer tearDownDatabase(t, db)

	var seen []OpContext
	auth := AuthorizerFunc(func(_ context.Context, _ Identity, op OpContext) error {
		seen = append(seen, op)
		return nil
	})

	ledger := NewLedger(db, auth, &transferRecorder{})
	ctx := context.Background()
	require.NoError(t, ledger.Initialize(ctx))

	id, err := ledger.Mint(ctx, "seller-a", nil, 10, "op context")
	require.NoError(t, err)
	require.NoError(t, ledger.Purchase(ctx, id, "buyer-b", 1))

	require.Len(t, seen, 2)
	assert.Equal(t, OpMint, seen[0].Operation)
	assert.Equal(t, OpPurchase, seen[1].Operation)
	assert.Equal(t, id, seen[1].TokenID)
}
