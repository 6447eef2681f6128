package timemarket

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Names of the gated ledger operations, as handed to the authorizer.
const (
	OpMint               = "mint"
	OpPurchase           = "purchase"
	OpUpdateAvailability = "update_availability"
	OpDeleteToken        = "delete_token"
)

// OpContext describes one specific gated invocation. The invocation id
// lets an authority bind an approval to exactly this call rather than
// to the operation kind.
type OpContext struct {
	Operation    string
	TokenID      uint64
	InvocationID uuid.UUID
}

func NewOpContext(operation string, tokenID uint64) OpContext {
	return OpContext{
		Operation:    operation,
		TokenID:      tokenID,
		InvocationID: uuid.New(),
	}
}

// Authorizer is the identity authority the ledger consults before any
// state mutation. A non-nil error aborts the operation before it reads
// or writes anything.
type Authorizer interface {
	Authorize(ctx context.Context, id Identity, op OpContext) error
}

type AuthorizerFunc func(ctx context.Context, id Identity, op OpContext) error

func (f AuthorizerFunc) Authorize(ctx context.Context, id Identity, op OpContext) error {
	return f(ctx, id, op)
}

// AllowList authorizes a fixed, mutable set of identities for every
// operation. It is meant for tooling and tests; production deployments
// plug in their own authority.
type AllowList struct {
	mu      sync.RWMutex
	allowed map[Identity]struct{}
}

func NewAllowList(ids ...Identity) *AllowList {
	allowed := make(map[Identity]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	return &AllowList{allowed: allowed}
}

func (a *AllowList) Allow(id Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.allowed[id] = struct{}{}
}

func (a *AllowList) Revoke(id Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.allowed, id)
}

func (a *AllowList) Authorize(_ context.Context, id Identity, _ OpContext) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if _, ok := a.allowed[id]; !ok {
		return ErrNotAuthorized
	}
	return nil
}
