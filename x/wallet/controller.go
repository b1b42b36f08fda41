package wallet

import (
	"math"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// Module is an extension that can be installed on an account.
type Module interface {
	// Address returns the identity of the module. Calls made by the
	// module are authorized by this address.
	Address() vault.Address

	// InitAccount is called once, when an account installing this
	// module is initialized. data is the module specific payload.
	InitAccount(ctx vault.Context, db vault.KVStore, account vault.Address, data []byte) error
}

// Callee is implemented by anything that can receive call data executed
// by an account.
type Callee interface {
	Call(ctx vault.Context, db vault.KVStore, caller vault.Address, value uint64, data []byte) error
}

// Directory tells which modules may be installed.
type Directory interface {
	IsRegistered(db vault.ReadOnlyKVStore, module vault.Address) (bool, error)
}

// Controller manages accounts and balances.
type Controller struct {
	accounts orm.ModelBucket
	balances orm.ModelBucket
	dir      Directory
	modules  map[string]Module
	callees  map[string]Callee
}

// NewController returns a controller that admits only modules present in
// the given directory.
func NewController(dir Directory) *Controller {
	return &Controller{
		accounts: orm.NewModelBucket("account", &Account{}),
		balances: orm.NewModelBucket("balance", &Balance{}),
		dir:      dir,
		modules:  make(map[string]Module),
		callees:  make(map[string]Callee),
	}
}

// Attach makes a module implementation available for installation. A
// module that implements Callee also receives calls addressed to it.
func (c *Controller) Attach(m Module) {
	key := string(m.Address())
	if _, ok := c.modules[key]; ok {
		panic("module " + m.Address().String() + " already attached")
	}
	c.modules[key] = m
	if callee, ok := m.(Callee); ok {
		c.RegisterCallee(m.Address(), callee)
	}
}

// RegisterCallee binds call data addressed to target to given callee.
func (c *Controller) RegisterCallee(target vault.Address, callee Callee) {
	c.callees[string(target)] = callee
}

// Create stores a new, uninitialized account.
func (c *Controller) Create(db vault.KVStore, account vault.Address) error {
	if err := account.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	if err := c.accounts.Has(db, account); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "account %s", account)
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}
	return c.accounts.Put(db, account, &Account{})
}

// Initialize sets the caller as the account owner and installs given
// modules. Each module receives the init payload at the same position.
// An account can be initialized only once.
func (c *Controller) Initialize(ctx vault.Context, db vault.KVStore, caller, account vault.Address, modules []vault.Address, initData [][]byte) error {
	acc, err := c.load(db, account)
	if err != nil {
		return err
	}
	if acc.Initialized {
		return errors.Wrapf(errors.ErrState, "account %s already initialized", account)
	}
	if err := caller.Validate(); err != nil {
		return errors.Wrap(err, "caller")
	}
	if len(modules) != len(initData) {
		return errors.Wrapf(errors.ErrInput, "%d modules and %d init payloads", len(modules), len(initData))
	}

	installed := make([]Module, 0, len(modules))
	for _, addr := range modules {
		ok, err := c.dir.IsRegistered(db, addr)
		if err != nil {
			return errors.Wrap(err, "directory")
		}
		if !ok {
			return errors.Wrapf(errors.ErrUnauthorized, "module %s is not registered", addr)
		}
		m, ok := c.modules[string(addr)]
		if !ok {
			return errors.Wrapf(errors.ErrNotFound, "module %s implementation", addr)
		}
		if acc.HasModule(addr) {
			return errors.Wrapf(errors.ErrDuplicate, "module %s", addr)
		}
		acc.Modules = append(acc.Modules, addr.Clone())
		installed = append(installed, m)
	}
	acc.Owner = caller.Clone()
	acc.Initialized = true
	if err := c.accounts.Put(db, account, acc); err != nil {
		return err
	}

	for i, m := range installed {
		if err := m.InitAccount(ctx, db, account, initData[i]); err != nil {
			return errors.Wrapf(err, "init module %s", m.Address())
		}
	}
	vault.EmitEvent(ctx, "account_initialized", "account", account, "owner", caller, "modules", len(modules))
	return nil
}

// Owner returns the owner of an initialized account.
func (c *Controller) Owner(db vault.ReadOnlyKVStore, account vault.Address) (vault.Address, error) {
	acc, err := c.loadInitialized(db, account)
	if err != nil {
		return nil, err
	}
	return acc.Owner, nil
}

// NextSequenceID returns the sequence value the next relayed action must
// present.
func (c *Controller) NextSequenceID(db vault.ReadOnlyKVStore, account vault.Address) (uint64, error) {
	acc, err := c.loadInitialized(db, account)
	if err != nil {
		return 0, err
	}
	return acc.Sequence, nil
}

// IsModuleInstalled returns true if the module is installed on the account.
// An uninitialized or missing account has no modules.
func (c *Controller) IsModuleInstalled(db vault.ReadOnlyKVStore, account, module vault.Address) (bool, error) {
	acc, err := c.load(db, account)
	switch {
	case errors.ErrNotFound.Is(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return acc.HasModule(module), nil
}

// IncrementSequence advances the account sequence by one and returns the
// new value. Only an installed module can call it.
func (c *Controller) IncrementSequence(ctx vault.Context, db vault.KVStore, caller, account vault.Address) (uint64, error) {
	acc, err := c.authorized(db, caller, account)
	if err != nil {
		return 0, err
	}
	if acc.Sequence == math.MaxUint64 {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	acc.Sequence++
	if err := c.accounts.Put(db, account, acc); err != nil {
		return 0, err
	}
	return acc.Sequence, nil
}

// ReplaceOwner sets a new owner. Only an installed module can call it.
func (c *Controller) ReplaceOwner(ctx vault.Context, db vault.KVStore, caller, account, newOwner vault.Address) error {
	if err := newOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	acc, err := c.authorized(db, caller, account)
	if err != nil {
		return err
	}
	prev := acc.Owner
	acc.Owner = newOwner.Clone()
	if err := c.accounts.Put(db, account, acc); err != nil {
		return err
	}
	vault.EmitEvent(ctx, "owner_replaced", "account", account, "previous", prev, "owner", newOwner)
	return nil
}

// Execute moves value from the account to target and, if data is not
// empty, passes the data to the callee registered for target with the
// account as the caller. Only an installed module can call it.
func (c *Controller) Execute(ctx vault.Context, db vault.KVStore, caller, account, target vault.Address, value uint64, data []byte) error {
	if _, err := c.authorized(db, caller, account); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	if value > 0 {
		if err := c.transfer(db, account, target, value); err != nil {
			return err
		}
	}
	if len(data) != 0 {
		callee, ok := c.callees[string(target)]
		if !ok {
			return errors.Wrapf(errors.ErrNotFound, "no callee at %s", target)
		}
		if err := callee.Call(ctx, db, account, value, data); err != nil {
			return err
		}
	}
	vault.EmitEvent(ctx, "executed", "account", account, "module", caller, "target", target, "value", value)
	return nil
}

// Deposit credits amount to the balance of addr. Addresses do not need to
// belong to an existing account, so an account can be funded before it is
// created.
func (c *Controller) Deposit(db vault.KVStore, addr vault.Address, amount uint64) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	bal, err := c.Balance(db, addr)
	if err != nil {
		return err
	}
	if bal > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	return c.balances.Put(db, addr, &Balance{Amount: bal + amount})
}

// Balance returns the amount held by addr.
func (c *Controller) Balance(db vault.ReadOnlyKVStore, addr vault.Address) (uint64, error) {
	var b Balance
	switch err := c.balances.One(db, addr, &b); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return b.Amount, nil
}

func (c *Controller) transfer(db vault.KVStore, from, to vault.Address, amount uint64) error {
	bal, err := c.Balance(db, from)
	if err != nil {
		return err
	}
	if bal < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, required %d", bal, amount)
	}
	if err := c.balances.Put(db, from, &Balance{Amount: bal - amount}); err != nil {
		return err
	}
	return c.Deposit(db, to, amount)
}

func (c *Controller) authorized(db vault.ReadOnlyKVStore, caller, account vault.Address) (*Account, error) {
	acc, err := c.loadInitialized(db, account)
	if err != nil {
		return nil, err
	}
	if !acc.HasModule(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not installed on %s", caller, account)
	}
	return acc, nil
}

func (c *Controller) loadInitialized(db vault.ReadOnlyKVStore, account vault.Address) (*Account, error) {
	acc, err := c.load(db, account)
	if err != nil {
		return nil, err
	}
	if !acc.Initialized {
		return nil, errors.Wrapf(errors.ErrState, "account %s not initialized", account)
	}
	return acc, nil
}

func (c *Controller) load(db vault.ReadOnlyKVStore, account vault.Address) (*Account, error) {
	var acc Account
	if err := c.accounts.One(db, account, &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", account)
	}
	return &acc, nil
}
