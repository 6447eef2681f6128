package timemarket

import (
	"context"
	"math/big"
	"testing"

	"github.com/go-timemarket/timemarket/serializers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializer_TokenRecordCBOR(t *testing.T) {
	serializer := &serializers.CBORSerializer{}

	rate := new(big.Int)
	rate.SetString("-170141183460469231731687303715884105728", 10) // i128 min

	token := &TimeToken{
		Seller:         "seller-a",
		HourlyRate:     rate,
		HoursAvailable: 40,
		Description:    "consulting",
	}

	data, err := serializer.Serialize(token)
	require.NoError(t, err)

	var decoded TimeToken
	require.NoError(t, serializer.Deserialize(data, &decoded))
	assert.Equal(t, token.Seller, decoded.Seller)
	assert.Zero(t, rate.Cmp(decoded.HourlyRate))
	assert.Equal(t, token.HoursAvailable, decoded.HoursAvailable)
	assert.Equal(t, token.Description, decoded.Description)
}

func TestSerializer_LedgerOnJSONStore(t *testing.T) {
	db := setupDatabase(&serializers.JSONSerializer{})
	defer tearDownDatabase(t, db)

	ledger := NewLedger(db, approveAll(), &transferRecorder{})

	ctx := context.Background()
	require.NoError(t, ledger.Initialize(ctx))

	id, err := ledger.Mint(ctx, "seller-a", big.NewInt(100), 40, "consulting")
	require.NoError(t, err)

	token, err := ledger.GetToken(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), token.HourlyRate.Int64())
}
