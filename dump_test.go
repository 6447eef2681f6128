package timemarket

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump_RoundTrip(t *testing.T) {
	db := setupDatabase()
	defer tearDownDatabase(t, db)

	book := NewSettlementBook(db)
	ledger := NewLedger(db, approveAll(), book)

	ctx := context.Background()
	require.NoError(t, ledger.Initialize(ctx))
	require.NoError(t, book.Deposit(ctx, "buyer-b", big.NewInt(5000)))

	id1, err := ledger.Mint(ctx, "seller-a", big.NewInt(100), 40, "consulting")
	require.NoError(t, err)
	id2, err := ledger.Mint(ctx, "seller-a", big.NewInt(250), 8, "code review")
	require.NoError(t, err)
	require.NoError(t, ledger.Purchase(ctx, id1, "buyer-b", 10))

	var dump bytes.Buffer
	require.NoError(t, Dump(ctx, db, &dump))

	restored := setupDB("test_db_restored")
	defer tearDownDB(t, "test_db_restored", restored)

	require.NoError(t, Restore(ctx, restored, bytes.NewReader(dump.Bytes())))

	restoredLedger := NewLedger(restored, approveAll(), NewSettlementBook(restored))

	count, err := restoredLedger.TokenCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	token, err := restoredLedger.GetToken(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, uint32(30), token.HoursAvailable)
	assert.Equal(t, int64(100), token.HourlyRate.Int64())

	token, err = restoredLedger.GetToken(ctx, id2)
	require.NoError(t, err)
	assert.Equal(t, "code review", token.Description)

	ids, err := restoredLedger.SellerTokens(ctx, "seller-a")
	require.NoError(t, err)
	assert.Equal(t, []uint64{id1, id2}, ids)

	restoredBook := NewSettlementBook(restored)
	sellerBalance, err := restoredBook.Balance(ctx, "seller-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), sellerBalance.Int64())

	// restored store keeps issuing fresh ids
	next, err := restoredLedger.Mint(ctx, "seller-a", big.NewInt(1), 1, "post restore")
	require.NoError(t, err)
	assert.Equal(t, id2+1, next)
}

func TestDump_EmptyStore(t *testing.T) {
	db := setupDatabase()
	defer tearDownDatabase(t, db)

	var dump bytes.Buffer
	require.NoError(t, Dump(context.Background(), db, &dump))
	assert.NotZero(t, dump.Len()) // version stamp is always present
}
