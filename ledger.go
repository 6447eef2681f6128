package timemarket

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/cockroachdb/pebble"
)

// Ledger is the marketplace state machine. It owns the token records,
// the per-seller minted-id index and the monotonic id counter, and it
// is the only writer of those keyspaces.
//
// Every public operation executes as one serialized unit: the ledger
// holds a single lock across the authorization check, the reads, the
// capability calls and the batch commit. A failed operation commits
// nothing.
type Ledger struct {
	mu sync.RWMutex

	db       DB
	auth     Authorizer
	transfer ValueTransfer

	tokens  Serializer[*TimeToken]
	indexes Serializer[*[]uint64]
}

// NewLedger binds a ledger to its store and capabilities. A nil
// authorizer denies every gated operation and a nil transfer refuses
// every payment, which leaves the read surface usable on its own.
func NewLedger(db DB, auth Authorizer, transfer ValueTransfer) *Ledger {
	if auth == nil {
		auth = AuthorizerFunc(func(context.Context, Identity, OpContext) error {
			return ErrNotAuthorized
		})
	}
	if transfer == nil {
		transfer = ValueTransferFunc(func(context.Context, Identity, Identity, *big.Int) error {
			return errors.New("timemarket: no value transfer configured")
		})
	}
	return &Ledger{
		db:       db,
		auth:     auth,
		transfer: transfer,
		tokens:   &SerializerAnyWrapper[*TimeToken]{Serializer: db.Serializer()},
		indexes:  &SerializerAnyWrapper[*[]uint64]{Serializer: db.Serializer()},
	}
}

// Initialize writes the id counter if the store has none. Calling it on
// an initialized ledger is a no-op; the counter is never reset, so ids
// can never be reissued.
func (l *Ledger) Initialize(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.readCounter()
	if err == nil {
		return nil
	}
	if !errors.Is(err, pebble.ErrNotFound) {
		return err
	}

	return l.db.Set(TokenCounterKey(), encodeCounter(0), Sync)
}

// Mint registers a new time token for seller and returns its id. Ids
// are 1-based and strictly increasing for the life of the store. The
// rate is stored as given; no sign or magnitude check is applied.
func (l *Ledger) Mint(ctx context.Context, seller Identity, hourlyRate *big.Int, hoursAvailable uint32, description string) (uint64, error) {
	if err := l.auth.Authorize(ctx, seller, NewOpContext(OpMint, 0)); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	batch := l.db.NewBatch()
	defer func() {
		_ = batch.Close()
	}()

	counter, err := l.readCounter(batch)
	if err != nil && !errors.Is(err, pebble.ErrNotFound) {
		return 0, err
	}

	counter++

	if err := batch.Set(TokenCounterKey(), encodeCounter(counter), Sync); err != nil {
		return 0, err
	}

	token := &TimeToken{
		Seller:         seller,
		HourlyRate:     hourlyRate,
		HoursAvailable: hoursAvailable,
		Description:    description,
	}
	if err := l.writeToken(batch, counter, token); err != nil {
		return 0, err
	}

	ids, err := l.readSellerIndex(seller, batch)
	if err != nil {
		return 0, err
	}
	ids = append(ids, counter)
	if err := l.writeSellerIndex(batch, seller, ids); err != nil {
		return 0, err
	}

	if err := batch.Commit(Sync); err != nil {
		return 0, err
	}
	return counter, nil
}

// GetToken looks up a token record. No authorization is required; the
// records are publicly visible. Returns ErrTokenNotFound for ids that
// were never minted or were deleted.
func (l *Ledger) GetToken(_ context.Context, id uint64) (*TimeToken, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.readToken(id)
}

// Purchase buys hours from a token. The value transfer and the hours
// decrement form one atomic unit: if the transfer fails nothing is
// written, and when the transfer can stage into the ledger's batch both
// commit in a single write. A transfer that succeeds externally but is
// followed by a failed commit is surfaced as the commit error.
func (l *Ledger) Purchase(ctx context.Context, id uint64, buyer Identity, hours uint32) error {
	if err := l.auth.Authorize(ctx, buyer, NewOpContext(OpPurchase, id)); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	token, err := l.readToken(id)
	if err != nil {
		return err
	}

	if token.HoursAvailable < hours {
		return fmt.Errorf("%w: token %d has %d, requested %d",
			ErrInsufficientHours, id, token.HoursAvailable, hours)
	}

	batch := l.db.NewBatch()
	defer func() {
		_ = batch.Close()
	}()

	total := token.Cost(hours)
	if mover, ok := l.transfer.(batchMover); ok {
		err = mover.MoveInBatch(ctx, batch, buyer, token.Seller, total)
	} else {
		err = l.transfer.Move(ctx, buyer, token.Seller, total)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	token.HoursAvailable -= hours
	if err := l.writeToken(batch, id, token); err != nil {
		return err
	}

	return batch.Commit(Sync)
}

// UpdateAvailability overwrites a token's available hours verbatim.
// This is an administrative reset by the owning seller; it may increase
// the balance.
func (l *Ledger) UpdateAvailability(ctx context.Context, id uint64, seller Identity, newHours uint32) error {
	if err := l.auth.Authorize(ctx, seller, NewOpContext(OpUpdateAvailability, id)); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	token, err := l.readToken(id)
	if err != nil {
		return err
	}

	if token.Seller != seller {
		return fmt.Errorf("%w: token %d", ErrOwnershipMismatch, id)
	}

	token.HoursAvailable = newHours

	batch := l.db.NewBatch()
	defer func() {
		_ = batch.Close()
	}()

	if err := l.writeToken(batch, id, token); err != nil {
		return err
	}
	return batch.Commit(Sync)
}

// DeleteToken removes a token record permanently. The id remains listed
// in the seller index; deleted ids are never reused.
func (l *Ledger) DeleteToken(ctx context.Context, id uint64, seller Identity) error {
	if err := l.auth.Authorize(ctx, seller, NewOpContext(OpDeleteToken, id)); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	token, err := l.readToken(id)
	if err != nil {
		return err
	}

	if token.Seller != seller {
		return fmt.Errorf("%w: token %d", ErrOwnershipMismatch, id)
	}

	batch := l.db.NewBatch()
	defer func() {
		_ = batch.Close()
	}()

	if err := batch.Delete(TokenKey(id), Sync); err != nil {
		return err
	}
	return batch.Commit(Sync)
}

// SellerTokens returns every id the seller has ever minted, in mint
// order. The index is append-only: ids of since-deleted tokens stay
// listed and resolve to ErrTokenNotFound via GetToken. Returns an empty
// slice for sellers that never minted.
func (l *Ledger) SellerTokens(_ context.Context, seller Identity) ([]uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.readSellerIndex(seller)
}

// TokenCount returns the number of successful mints over the ledger's
// lifetime, deleted tokens included.
func (l *Ledger) TokenCount(_ context.Context) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	counter, err := l.readCounter()
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return counter, nil
}

func (l *Ledger) readCounter(optBatch ...Batch) (uint64, error) {
	data, closer, err := l.db.Get(TokenCounterKey(), optBatch...)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = closer.Close()
	}()

	if len(data) != 8 {
		return 0, fmt.Errorf("timemarket: malformed token counter cell (%d bytes)", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}

func (l *Ledger) readToken(id uint64, optBatch ...Batch) (*TimeToken, error) {
	data, closer, err := l.db.Get(TokenKey(id), optBatch...)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrTokenNotFound, id)
		}
		return nil, err
	}
	defer func() {
		_ = closer.Close()
	}()

	var token TimeToken
	if err := l.tokens.Deserialize(data, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (l *Ledger) writeToken(batch Batch, id uint64, token *TimeToken) error {
	data, err := l.tokens.Serialize(token)
	if err != nil {
		return err
	}
	return batch.Set(TokenKey(id), data, Sync)
}

func (l *Ledger) readSellerIndex(seller Identity, optBatch ...Batch) ([]uint64, error) {
	data, closer, err := l.db.Get(SellerTokensKey(seller), optBatch...)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return []uint64{}, nil
		}
		return nil, err
	}
	defer func() {
		_ = closer.Close()
	}()

	var ids []uint64
	if err := l.indexes.Deserialize(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *Ledger) writeSellerIndex(batch Batch, seller Identity, ids []uint64) error {
	data, err := l.indexes.Serialize(&ids)
	if err != nil {
		return err
	}
	return batch.Set(SellerTokensKey(seller), data, Sync)
}

func encodeCounter(counter uint64) []byte {
	var buff [8]byte
	binary.BigEndian.PutUint64(buff[:], counter)
	return buff[:]
}
