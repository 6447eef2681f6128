package timemarket

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys_TokenKeyOrder(t *testing.T) {
	// keys must sort by id so prefix scans see tokens in mint order
	ids := []uint64{1, 2, 9, 10, 255, 256, 1 << 32}
	for i := 1; i < len(ids); i++ {
		prev := TokenKey(ids[i-1])
		next := TokenKey(ids[i])
		assert.Negative(t, bytes.Compare(prev, next), "TokenKey(%d) !< TokenKey(%d)", ids[i-1], ids[i])
	}
}

func TestKeys_TokenIDFromKey(t *testing.T) {
	id, ok := TokenIDFromKey(TokenKey(42))
	require.True(t, ok)
	assert.Equal(t, uint64(42), id)

	_, ok = TokenIDFromKey(SellerTokensKey("seller-a"))
	assert.False(t, ok)

	_, ok = TokenIDFromKey([]byte{})
	assert.False(t, ok)
}

func TestKeys_KeySpaceBounds(t *testing.T) {
	for _, ks := range KeySpaces() {
		lower := KeySpacePrefix(ks)
		upper := KeySpaceUpperBound(ks)
		assert.Negative(t, bytes.Compare(lower, upper))
	}

	assert.True(t, bytes.HasPrefix(TokenKey(1), KeySpacePrefix(TokenKeySpace)))
	assert.True(t, bytes.HasPrefix(SellerTokensKey("s"), KeySpacePrefix(SellerTokensKeySpace)))
	assert.True(t, bytes.HasPrefix(BalanceKey("s"), KeySpacePrefix(BalanceKeySpace)))
	assert.True(t, bytes.HasPrefix(TokenCounterKey(), KeySpacePrefix(TokenCounterKeySpace)))
}

func TestKeys_KeySpacesDisjoint(t *testing.T) {
	assert.NotEqual(t, TokenKey(1)[0], SellerTokensKey("\x00\x00\x00\x00\x00\x00\x00\x01")[0])

	seen := map[byte]bool{}
	for _, ks := range KeySpaces() {
		require.False(t, seen[byte(ks)], "duplicate keyspace byte %x", byte(ks))
		seen[byte(ks)] = true
	}
}

func TestKeys_BuilderFieldIDs(t *testing.T) {
	key := NewKeyBuilder(nil).
		AddStringField("a").
		AddStringField("b").
		Bytes()

	// fields are prefixed with their 1-based field id
	assert.Equal(t, []byte{0x01, 'a', 0x02, 'b'}, key)
}
