package security

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/utils"
)

// Action is a relayed call. It is never stored, the advanced account
// sequence is its only durable trace.
type Action struct {
	Target   vault.Address
	Value    uint64
	Data     []byte
	Sequence uint64
}

// Receipt describes a relayed action that passed authorization.
type Receipt struct {
	// Sequence is the account sequence after the action was consumed.
	Sequence uint64
	// Err is the failure of the executed call or nil. State changes of a
	// failed call are discarded.
	Err error
}

// Failure returns nil for a successful call, otherwise an ErrRelayFailed
// error describing the failure.
func (r *Receipt) Failure() error {
	if r.Err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrRelayFailed, r.Err.Error())
}

// Digest returns the hash every signer of account must sign to authorize
// given action through this module.
func (m *Module) Digest(account vault.Address, a Action) []byte {
	return crypto.RelayDigest(m.address, account, a.Target, a.Value, a.Data, a.Sequence)
}

// Multicall executes a relayed action on behalf of the account. The
// action must carry the current account sequence and one signature from
// each current signer.
//
// An error is returned only when the action is rejected, in which case
// nothing changes. Once accepted, the account sequence advances even if
// the executed call fails. The outcome of the call is reported by the
// receipt.
func (m *Module) Multicall(ctx vault.Context, db vault.KVStore, caller, account vault.Address, a Action, sigs [][]byte) (*Receipt, error) {
	g, err := m.guard(db, account)
	if err != nil {
		return nil, err
	}
	if g.Lock != nil {
		return nil, errors.Wrapf(errors.ErrAccountLocked, "locked by %s", g.Lock.LockedBy)
	}
	if err := a.Target.Validate(); err != nil {
		return nil, errors.Wrap(err, "target")
	}

	seq, err := m.accounts.NextSequenceID(db, account)
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	if a.Sequence != seq {
		return nil, errors.Wrapf(errors.ErrSequenceMismatch, "expected %d, got %d", seq, a.Sequence)
	}
	if _, err := crypto.CollectQuorum(m.Digest(account, a), sigs, g.Signers); err != nil {
		return nil, err
	}

	next, err := m.accounts.IncrementSequence(ctx, db, m.address, account)
	if err != nil {
		return nil, errors.Wrap(err, "increment sequence")
	}

	// Events of a discarded call are dropped together with its state.
	var events vault.EventLog
	callErr := utils.Savepoint(vault.WithEventLog(ctx, &events), db, func(ctx vault.Context, db vault.KVStore) error {
		return m.accounts.Execute(ctx, db, m.address, account, a.Target, a.Value, a.Data)
	})
	if callErr == nil {
		vault.GetEventLog(ctx).Append(events.Events()...)
	} else {
		vault.GetLogger(ctx).Info("relayed call failed", "module", packageName, "account", account, "sequence", a.Sequence, "err", callErr)
	}

	vault.EmitEvent(ctx, "multicall",
		"account", account,
		"relayer", caller,
		"target", a.Target,
		"value", a.Value,
		"sequence", a.Sequence,
		"success", callErr == nil,
	)
	return &Receipt{Sequence: next, Err: callErr}, nil
}
