package timemarket

import (
	"context"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/fatih/structs"
	"golang.org/x/exp/slices"
)

// Stats summarizes the observable ledger state. TokenCount counts every
// successful mint ever; ActiveTokens counts records still present.
type Stats struct {
	TokenCount   uint64 `json:"token_count"`
	ActiveTokens uint64 `json:"active_tokens"`
	Sellers      uint64 `json:"sellers"`
	DiskUsage    uint64 `json:"disk_usage"`
}

// Inspect is the read-only introspection surface over a ledger store.
// It is served over HTTP by NewInspectHandler and consumed remotely by
// NewInspectRemote.
type Inspect interface {
	Keyspaces() ([]string, error)
	TokenFields() (map[string]string, error)

	Token(ctx context.Context, id uint64) (*TimeToken, error)
	SellerTokens(ctx context.Context, seller Identity) ([]uint64, error)
	Sellers(ctx context.Context) ([]Identity, error)
	Stats(ctx context.Context) (Stats, error)
}

type inspect struct {
	db     DB
	ledger *Ledger
}

func NewInspect(db DB, ledger *Ledger) (Inspect, error) {
	if db == nil || ledger == nil {
		return nil, fmt.Errorf("timemarket: inspect requires a store and a ledger")
	}
	return &inspect{db: db, ledger: ledger}, nil
}

func (in *inspect) Keyspaces() ([]string, error) {
	var names []string
	for _, ks := range KeySpaces() {
		names = append(names, ks.String())
	}
	return names, nil
}

func (in *inspect) TokenFields() (map[string]string, error) {
	fields := make(map[string]string)
	for _, field := range structs.Fields(&TimeToken{}) {
		name := field.Tag("json")
		if name == "" {
			name = field.Name()
		}
		fields[name] = fmt.Sprintf("%T", field.Value())
	}
	return fields, nil
}

func (in *inspect) Token(ctx context.Context, id uint64) (*TimeToken, error) {
	return in.ledger.GetToken(ctx, id)
}

func (in *inspect) SellerTokens(ctx context.Context, seller Identity) ([]uint64, error) {
	return in.ledger.SellerTokens(ctx, seller)
}

// Sellers lists every identity with a seller index entry, sorted.
func (in *inspect) Sellers(_ context.Context) ([]Identity, error) {
	itr := in.db.Iter(&IterOptions{
		IterOptions: pebble.IterOptions{
			LowerBound: KeySpacePrefix(SellerTokensKeySpace),
			UpperBound: KeySpaceUpperBound(SellerTokensKeySpace),
		},
	})
	defer func() {
		_ = itr.Close()
	}()

	var sellers []Identity
	for itr.First(); itr.Valid(); itr.Next() {
		key := itr.Key()
		if len(key) < 2 {
			continue
		}
		// keyspace byte + field id, then the raw identity bytes
		sellers = append(sellers, Identity(key[2:]))
	}
	if err := itr.Error(); err != nil {
		return nil, err
	}

	slices.Sort(sellers)
	return sellers, nil
}

func (in *inspect) Stats(ctx context.Context) (Stats, error) {
	count, err := in.ledger.TokenCount(ctx)
	if err != nil {
		return Stats{}, err
	}

	active, err := in.countKeySpace(TokenKeySpace)
	if err != nil {
		return Stats{}, err
	}

	sellers, err := in.countKeySpace(SellerTokensKeySpace)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		TokenCount:   count,
		ActiveTokens: active,
		Sellers:      sellers,
		DiskUsage:    in.db.DiskUsage(),
	}, nil
}

func (in *inspect) countKeySpace(ks KeySpace) (uint64, error) {
	itr := in.db.Iter(&IterOptions{
		IterOptions: pebble.IterOptions{
			LowerBound: KeySpacePrefix(ks),
			UpperBound: KeySpaceUpperBound(ks),
		},
	})
	defer func() {
		_ = itr.Close()
	}()

	var count uint64
	for itr.First(); itr.Valid(); itr.Next() {
		count++
	}
	return count, itr.Error()
}
