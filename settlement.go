package timemarket

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/cockroachdb/pebble"
)

// SettlementBook is a persisted balance book implementing ValueTransfer
// against the same store as the ledger. Balances live in their own
// keyspace and are non-negative; a move checks the payer balance and
// stages the debit and credit together.
//
// When a SettlementBook backs a Ledger's purchases, the transfer joins
// the purchase batch, so payment and hours decrement commit as one
// write.
type SettlementBook struct {
	mu sync.Mutex
	db DB
}

func NewSettlementBook(db DB) *SettlementBook {
	return &SettlementBook{db: db}
}

// Balance returns the identity's current balance, zero if the identity
// has never been credited.
func (s *SettlementBook) Balance(_ context.Context, id Identity) (*big.Int, error) {
	return s.readBalance(id)
}

// Deposit credits the identity with the given non-negative amount.
func (s *SettlementBook) Deposit(_ context.Context, id Identity, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, err := s.readBalance(id)
	if err != nil {
		return err
	}

	balance.Add(balance, amount)
	return s.db.Set(BalanceKey(id), balance.Bytes(), Sync)
}

// Move transfers amount from payer to payee as a single commit.
func (s *SettlementBook) Move(ctx context.Context, payer, payee Identity, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.db.NewBatch()
	defer func() {
		_ = batch.Close()
	}()

	if err := s.moveInBatch(ctx, batch, payer, payee, amount); err != nil {
		return err
	}
	return batch.Commit(Sync)
}

// MoveInBatch stages the transfer in the caller's batch. The writes
// become durable only when the caller commits.
func (s *SettlementBook) MoveInBatch(ctx context.Context, batch Batch, payer, payee Identity, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.moveInBatch(ctx, batch, payer, payee, amount)
}

func (s *SettlementBook) moveInBatch(_ context.Context, batch Batch, payer, payee Identity, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 || payer == payee {
		return nil
	}

	payerBalance, err := s.readBalance(payer, batch)
	if err != nil {
		return err
	}
	if payerBalance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s has %s, needs %s",
			ErrInsufficientFunds, payer, payerBalance, amount)
	}

	payeeBalance, err := s.readBalance(payee, batch)
	if err != nil {
		return err
	}

	payerBalance.Sub(payerBalance, amount)
	payeeBalance.Add(payeeBalance, amount)

	if err := batch.Set(BalanceKey(payer), payerBalance.Bytes(), Sync); err != nil {
		return err
	}
	return batch.Set(BalanceKey(payee), payeeBalance.Bytes(), Sync)
}

func (s *SettlementBook) readBalance(id Identity, optBatch ...Batch) (*big.Int, error) {
	data, closer, err := s.db.Get(BalanceKey(id), optBatch...)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return new(big.Int), nil
		}
		return nil, err
	}
	defer func() {
		_ = closer.Close()
	}()

	return new(big.Int).SetBytes(data), nil
}
