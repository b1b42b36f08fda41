package vaulttest

import (
	"context"
	"time"

	"github.com/iov-one/vault"
)

// ChainID is used by all test contexts.
const ChainID = "test-chain"

// Ctx returns a context with the chain id and given block time set.
func Ctx(now time.Time) vault.Context {
	ctx := context.Background()
	ctx = vault.WithChainID(ctx, ChainID)
	ctx = vault.WithHeight(ctx, 1)
	return vault.WithBlockTime(ctx, now)
}

// CtxWithEvents is Ctx that additionally collects emitted events.
func CtxWithEvents(now time.Time) (vault.Context, *vault.EventLog) {
	var events vault.EventLog
	return vault.WithEventLog(Ctx(now), &events), &events
}
