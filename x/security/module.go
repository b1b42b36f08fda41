package security

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/orm"
)

// Accounts is the part of the account ledger the module acts on. All
// mutating calls are authorized by the module address.
type Accounts interface {
	Owner(db vault.ReadOnlyKVStore, account vault.Address) (vault.Address, error)
	NextSequenceID(db vault.ReadOnlyKVStore, account vault.Address) (uint64, error)
	IsModuleInstalled(db vault.ReadOnlyKVStore, account, module vault.Address) (bool, error)
	IncrementSequence(ctx vault.Context, db vault.KVStore, caller, account vault.Address) (uint64, error)
	ReplaceOwner(ctx vault.Context, db vault.KVStore, caller, account, newOwner vault.Address) error
	Execute(ctx vault.Context, db vault.KVStore, caller, account, target vault.Address, value uint64, data []byte) error
}

// Module is the security module. One instance serves all accounts that
// installed it.
type Module struct {
	address  vault.Address
	accounts Accounts
	bucket   orm.ModelBucket
	router   *vault.Router
}

// NewModule returns a module identified by address.
func NewModule(address vault.Address, accounts Accounts) *Module {
	if err := address.Validate(); err != nil {
		panic(err)
	}
	m := &Module{
		address:  address,
		accounts: accounts,
		bucket:   orm.NewModelBucket("guard", &Guard{}),
		router:   vault.NewRouter(),
	}
	m.router.Handle(pathExecuteRecovery, vault.HandlerFunc(m.deliverExecuteRecovery))
	return m
}

// Address returns the module identity.
func (m *Module) Address() vault.Address {
	return m.address
}

// InitAccount stores the signer set of a newly initialized account. data
// must be a serialized InitPayload.
func (m *Module) InitAccount(ctx vault.Context, db vault.KVStore, account vault.Address, data []byte) error {
	if err := m.installed(db, account); err != nil {
		return err
	}
	if err := m.bucket.Has(db, account); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "account %s already initialized", account)
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}

	var p InitPayload
	if err := proto.Unmarshal(data, &p); err != nil {
		return errors.Wrapf(errors.ErrInput, "init payload: %s", err)
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "init payload")
	}
	g := Guard{Signers: p.Signers, Quorum: p.Quorum}
	if err := m.bucket.Put(db, account, &g); err != nil {
		return err
	}
	vault.GetLogger(ctx).Info("security enabled", "module", packageName, "account", account, "signers", len(g.Signers))
	return nil
}

// TriggerRecovery starts replacing the account owner with proposedOwner.
// The caller must be a signer. At most one recovery can be active.
func (m *Module) TriggerRecovery(ctx vault.Context, db vault.KVStore, caller, account, proposedOwner vault.Address) error {
	g, err := m.guard(db, account)
	if err != nil {
		return err
	}
	if !g.IsSigner(caller) {
		return errors.Wrapf(errors.ErrNotASigner, "%s", caller)
	}
	if err := proposedOwner.Validate(); err != nil {
		return errors.Wrap(err, "proposed owner")
	}
	if g.Recovery != nil {
		return errors.Wrapf(errors.ErrRecoveryAlreadyActive, "proposed owner %s", g.Recovery.ProposedOwner)
	}
	now, err := vault.BlockTime(ctx)
	if err != nil {
		return errors.Wrap(err, "block time")
	}
	g.Recovery = &Recovery{
		ProposedOwner: proposedOwner.Clone(),
		TriggeredBy:   caller.Clone(),
		TriggeredAt:   vault.AsUnixTime(now),
	}
	if err := m.bucket.Put(db, account, g); err != nil {
		return err
	}
	vault.EmitEvent(ctx, "recovery_triggered", "account", account, "signer", caller, "proposed_owner", proposedOwner)
	return nil
}

// CancelRecovery drops the active recovery. Any signer and the owner can
// cancel.
func (m *Module) CancelRecovery(ctx vault.Context, db vault.KVStore, caller, account vault.Address) error {
	g, err := m.guard(db, account)
	if err != nil {
		return err
	}
	if !g.IsSigner(caller) {
		owner, err := m.accounts.Owner(db, account)
		if err != nil {
			return errors.Wrap(err, "owner")
		}
		if !owner.Equals(caller) {
			return errors.Wrapf(errors.ErrNotASigner, "%s is neither a signer nor the owner", caller)
		}
	}
	if g.Recovery == nil {
		return errors.Wrapf(errors.ErrNoActiveRecovery, "account %s", account)
	}
	g.Recovery = nil
	if err := m.bucket.Put(db, account, g); err != nil {
		return err
	}
	vault.EmitEvent(ctx, "recovery_cancelled", "account", account, "by", caller)
	return nil
}

// IsInRecovery returns true if the account has an active recovery.
func (m *Module) IsInRecovery(db vault.ReadOnlyKVStore, account vault.Address) (bool, error) {
	g, err := m.guard(db, account)
	if err != nil {
		return false, err
	}
	return g.Recovery != nil, nil
}

// Recovery returns the active recovery of the account.
func (m *Module) Recovery(db vault.ReadOnlyKVStore, account vault.Address) (*Recovery, error) {
	g, err := m.guard(db, account)
	if err != nil {
		return nil, err
	}
	if g.Recovery == nil {
		return nil, errors.Wrapf(errors.ErrNoActiveRecovery, "account %s", account)
	}
	return g.Recovery, nil
}

// ExecuteRecovery makes the proposed owner the account owner. It is only
// reachable as a relayed call, so the caller must be the account itself.
func (m *Module) ExecuteRecovery(ctx vault.Context, db vault.KVStore, caller, account vault.Address) error {
	if !caller.Equals(account) {
		return errors.Wrapf(errors.ErrUnauthorized, "recovery of %s executed by %s", account, caller)
	}
	g, err := m.guard(db, account)
	if err != nil {
		return err
	}
	if g.Recovery == nil {
		return errors.Wrapf(errors.ErrNoActiveRecovery, "account %s", account)
	}
	if err := m.recoveryDelayPassed(ctx, db, g.Recovery); err != nil {
		return err
	}
	owner := g.Recovery.ProposedOwner
	if err := m.accounts.ReplaceOwner(ctx, db, m.address, account, owner); err != nil {
		return errors.Wrap(err, "replace owner")
	}
	g.Recovery = nil
	if err := m.bucket.Put(db, account, g); err != nil {
		return err
	}
	vault.EmitEvent(ctx, "recovery_executed", "account", account, "owner", owner)
	return nil
}

func (m *Module) recoveryDelayPassed(ctx vault.Context, db vault.ReadOnlyKVStore, r *Recovery) error {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return errors.Wrap(err, "load configuration")
	}
	if conf.RecoveryDelay == 0 {
		return nil
	}
	executable := r.TriggeredAt.Add(conf.RecoveryDelay.Duration())
	if !vault.IsExpired(ctx, executable) {
		return errors.Wrapf(errors.ErrRecoveryPending, "executable after %s", executable)
	}
	return nil
}

// Lock locks the account. The caller must be a signer.
func (m *Module) Lock(ctx vault.Context, db vault.KVStore, caller, account vault.Address) error {
	g, err := m.guard(db, account)
	if err != nil {
		return err
	}
	if !g.IsSigner(caller) {
		return errors.Wrapf(errors.ErrNotASigner, "%s", caller)
	}
	if g.Lock != nil {
		return errors.Wrapf(errors.ErrAlreadyLocked, "by %s", g.Lock.LockedBy)
	}
	now, err := vault.BlockTime(ctx)
	if err != nil {
		return errors.Wrap(err, "block time")
	}
	g.Lock = &Lock{LockedBy: caller.Clone(), LockedAt: vault.AsUnixTime(now)}
	if err := m.bucket.Put(db, account, g); err != nil {
		return err
	}
	vault.EmitEvent(ctx, "locked", "account", account, "signer", caller)
	return nil
}

// Unlock unlocks the account. The caller must be a signer, not necessarily
// the one that locked it.
func (m *Module) Unlock(ctx vault.Context, db vault.KVStore, caller, account vault.Address) error {
	g, err := m.guard(db, account)
	if err != nil {
		return err
	}
	if !g.IsSigner(caller) {
		return errors.Wrapf(errors.ErrNotASigner, "%s", caller)
	}
	if g.Lock == nil {
		return errors.Wrapf(errors.ErrNotLocked, "account %s", account)
	}
	g.Lock = nil
	if err := m.bucket.Put(db, account, g); err != nil {
		return err
	}
	vault.EmitEvent(ctx, "unlocked", "account", account, "signer", caller)
	return nil
}

// IsLocked returns true if the account is locked.
func (m *Module) IsLocked(db vault.ReadOnlyKVStore, account vault.Address) (bool, error) {
	g, err := m.guard(db, account)
	if err != nil {
		return false, err
	}
	return g.Lock != nil, nil
}

// ReplaceSigner swaps oldSigner for newSigner at the same position of the
// signer set. Only the account owner can replace signers.
func (m *Module) ReplaceSigner(ctx vault.Context, db vault.KVStore, caller, account, newSigner, oldSigner vault.Address) error {
	g, err := m.guard(db, account)
	if err != nil {
		return err
	}
	owner, err := m.accounts.Owner(db, account)
	if err != nil {
		return errors.Wrap(err, "owner")
	}
	if !owner.Equals(caller) {
		return errors.Wrapf(errors.ErrNotOwner, "%s", caller)
	}
	if err := newSigner.Validate(); err != nil {
		return errors.Wrap(err, "new signer")
	}
	i := g.signerIndex(oldSigner)
	if i < 0 {
		return errors.Wrapf(errors.ErrNotCurrentSigner, "%s", oldSigner)
	}
	if g.IsSigner(newSigner) {
		return errors.Wrapf(errors.ErrDuplicateSigner, "%s", newSigner)
	}
	g.Signers[i] = newSigner.Clone()
	if err := m.bucket.Put(db, account, g); err != nil {
		return err
	}
	vault.EmitEvent(ctx, "signer_replaced", "account", account, "old", oldSigner, "new", newSigner)
	return nil
}

// IsSigner returns true if addr is a current signer of the account.
func (m *Module) IsSigner(db vault.ReadOnlyKVStore, account, addr vault.Address) (bool, error) {
	g, err := m.guard(db, account)
	if err != nil {
		return false, err
	}
	return g.IsSigner(addr), nil
}

// Signers returns the current signer set of the account, in order.
func (m *Module) Signers(db vault.ReadOnlyKVStore, account vault.Address) ([]vault.Address, error) {
	g, err := m.guard(db, account)
	if err != nil {
		return nil, err
	}
	return g.Signers, nil
}

// Call receives relayed call data executed by an account. The caller is
// the account.
func (m *Module) Call(ctx vault.Context, db vault.KVStore, caller vault.Address, value uint64, data []byte) error {
	if value != 0 {
		return errors.Wrap(errors.ErrInput, "security module does not accept value")
	}
	return m.router.Call(ctx, db, caller, value, data)
}

func (m *Module) deliverExecuteRecovery(ctx vault.Context, db vault.KVStore, caller vault.Address, env *vault.Envelope) error {
	var msg ExecuteRecoveryMsg
	if err := env.LoadMsg(&msg); err != nil {
		return err
	}
	return m.ExecuteRecovery(ctx, db, caller, msg.Account)
}

// UpdateConfiguration replaces the module configuration. Only the current
// configuration owner can do this.
func (m *Module) UpdateConfiguration(ctx vault.Context, db vault.KVStore, caller vault.Address, next *Configuration) error {
	if err := gconf.Update(db, packageName, caller, &Configuration{}, next); err != nil {
		return err
	}
	vault.EmitEvent(ctx, "security_configured", "owner", next.Owner, "recovery_delay", next.RecoveryDelay)
	return nil
}

// guard loads the state of an account that installed this module.
func (m *Module) guard(db vault.ReadOnlyKVStore, account vault.Address) (*Guard, error) {
	if err := m.installed(db, account); err != nil {
		return nil, err
	}
	var g Guard
	if err := m.bucket.One(db, account, &g); err != nil {
		return nil, errors.Wrapf(err, "account %s", account)
	}
	return &g, nil
}

func (m *Module) installed(db vault.ReadOnlyKVStore, account vault.Address) error {
	ok, err := m.accounts.IsModuleInstalled(db, account, m.address)
	if err != nil {
		return errors.Wrap(err, "accounts")
	}
	if !ok {
		return errors.Wrapf(errors.ErrUnauthorized, "module not installed on %s", account)
	}
	return nil
}
