package timemarket

import (
	"context"
	"math/big"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectHandler_RemoteRoundTrip(t *testing.T) {
	inspect, ledger, db := setupInspect(t)
	defer tearDownDatabase(t, db)

	ctx := context.Background()
	id, err := ledger.Mint(ctx, "seller-a", big.NewInt(100), 40, "consulting")
	require.NoError(t, err)

	server := httptest.NewServer(NewInspectHandler(inspect))
	defer server.Close()

	remote := NewInspectRemote(server.URL, nil)

	keyspaces, err := remote.Keyspaces()
	require.NoError(t, err)
	assert.Equal(t, []string{"meta", "token_counter", "tokens", "seller_tokens", "balances"}, keyspaces)

	fields, err := remote.TokenFields()
	require.NoError(t, err)
	assert.Contains(t, fields, "hourly_rate")

	token, err := remote.Token(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Identity("seller-a"), token.Seller)
	assert.Equal(t, uint32(40), token.HoursAvailable)
	assert.Equal(t, int64(100), token.HourlyRate.Int64())

	ids, err := remote.SellerTokens(ctx, "seller-a")
	require.NoError(t, err)
	assert.Equal(t, []uint64{id}, ids)

	sellers, err := remote.Sellers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Identity{"seller-a"}, sellers)

	stats, err := remote.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.TokenCount)
	assert.Equal(t, uint64(1), stats.ActiveTokens)
}

func TestInspectHandler_TokenNotFound(t *testing.T) {
	inspect, _, db := setupInspect(t)
	defer tearDownDatabase(t, db)

	server := httptest.NewServer(NewInspectHandler(inspect))
	defer server.Close()

	remote := NewInspectRemote(server.URL, nil)

	_, err := remote.Token(context.Background(), 42)
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestInspectHandler_UnknownPath(t *testing.T) {
	inspect, _, db := setupInspect(t)
	defer tearDownDatabase(t, db)

	server := httptest.NewServer(NewInspectHandler(inspect))
	defer server.Close()

	resp, err := server.Client().Get(server.URL + "/nope")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, 404, resp.StatusCode)
}
