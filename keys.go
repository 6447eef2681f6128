package timemarket

import (
	"encoding/binary"
)

// KeySpace is the first byte of every key and selects one of the
// ledger's persistent maps. Keys in a keyspace sort by their encoded
// fields, so prefix scans over a keyspace see entries in field order.
type KeySpace byte

const (
	MetaKeySpace         KeySpace = 0x00
	TokenCounterKeySpace KeySpace = 0x01
	TokenKeySpace        KeySpace = 0x02
	SellerTokensKeySpace KeySpace = 0x03
	BalanceKeySpace      KeySpace = 0x04
)

func (ks KeySpace) String() string {
	switch ks {
	case MetaKeySpace:
		return "meta"
	case TokenCounterKeySpace:
		return "token_counter"
	case TokenKeySpace:
		return "tokens"
	case SellerTokensKeySpace:
		return "seller_tokens"
	case BalanceKeySpace:
		return "balances"
	default:
		return "unknown"
	}
}

// KeySpaces lists every keyspace the ledger persists, dump order.
func KeySpaces() []KeySpace {
	return []KeySpace{
		MetaKeySpace,
		TokenCounterKeySpace,
		TokenKeySpace,
		SellerTokensKeySpace,
		BalanceKeySpace,
	}
}

type KeyBuilder struct {
	buff []byte
	fid  byte
}

func NewKeyBuilder(buff []byte) KeyBuilder {
	return KeyBuilder{buff: buff}
}

func (b KeyBuilder) AddUint64Field(i uint64) KeyBuilder {
	bt := b.putFieldID()
	bt.buff = append(bt.buff, []byte{0, 0, 0, 0, 0, 0, 0, 0}...)
	binary.BigEndian.PutUint64(bt.buff[len(bt.buff)-8:], i)
	return bt
}

func (b KeyBuilder) AddUint32Field(i uint32) KeyBuilder {
	bt := b.putFieldID()
	bt.buff = append(bt.buff, []byte{0, 0, 0, 0}...)
	binary.BigEndian.PutUint32(bt.buff[len(bt.buff)-4:], i)
	return bt
}

func (b KeyBuilder) AddStringField(s string) KeyBuilder {
	bt := b.putFieldID()
	bt.buff = append(bt.buff, []byte(s)...)
	return bt
}

func (b KeyBuilder) AddBytesField(bs []byte) KeyBuilder {
	bt := b.putFieldID()
	bt.buff = append(bt.buff, bs...)
	return bt
}

func (b KeyBuilder) putFieldID() KeyBuilder {
	return KeyBuilder{
		buff: append(b.buff, b.fid+1),
		fid:  b.fid + 1,
	}
}

func (b KeyBuilder) Bytes() []byte {
	return b.buff
}

func keySpaceBuilder(ks KeySpace) KeyBuilder {
	return NewKeyBuilder([]byte{byte(ks)})
}

// KeySpacePrefix is the inclusive lower bound for iterating a keyspace.
func KeySpacePrefix(ks KeySpace) []byte {
	return []byte{byte(ks)}
}

// KeySpaceUpperBound is the exclusive upper bound for iterating a
// keyspace.
func KeySpaceUpperBound(ks KeySpace) []byte {
	return []byte{byte(ks) + 1}
}

// TokenCounterKey addresses the single monotonic id counter cell.
func TokenCounterKey() []byte {
	return KeySpacePrefix(TokenCounterKeySpace)
}

// TokenKey addresses the record for one token id.
func TokenKey(id uint64) []byte {
	return keySpaceBuilder(TokenKeySpace).AddUint64Field(id).Bytes()
}

// TokenIDFromKey recovers the id from a key built by TokenKey.
func TokenIDFromKey(key []byte) (uint64, bool) {
	if len(key) != 10 || KeySpace(key[0]) != TokenKeySpace {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[2:]), true
}

// SellerTokensKey addresses the minted-id sequence of one seller.
func SellerTokensKey(seller Identity) []byte {
	return keySpaceBuilder(SellerTokensKeySpace).AddStringField(string(seller)).Bytes()
}

// BalanceKey addresses one identity's settlement balance.
func BalanceKey(id Identity) []byte {
	return keySpaceBuilder(BalanceKeySpace).AddStringField(string(id)).Bytes()
}
