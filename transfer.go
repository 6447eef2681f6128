package timemarket

import (
	"context"
	"math/big"
)

// ValueTransfer moves a fungible payment amount between two identities.
// The ledger invokes it during purchase, before the hours decrement is
// committed; a non-nil error aborts the whole purchase.
type ValueTransfer interface {
	Move(ctx context.Context, payer, payee Identity, amount *big.Int) error
}

type ValueTransferFunc func(ctx context.Context, payer, payee Identity, amount *big.Int) error

func (f ValueTransferFunc) Move(ctx context.Context, payer, payee Identity, amount *big.Int) error {
	return f(ctx, payer, payee, amount)
}

// batchMover is implemented by transfers that can stage their writes in
// the caller's batch, making transfer and decrement one atomic commit.
// SettlementBook implements it when bound to the ledger's store.
type batchMover interface {
	MoveInBatch(ctx context.Context, batch Batch, payer, payee Identity, amount *big.Int) error
}
