package app

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/x/deployer"
	"github.com/iov-one/vault/x/registry"
	"github.com/iov-one/vault/x/security"
	"github.com/iov-one/vault/x/utils"
	"github.com/iov-one/vault/x/wallet"
	"github.com/tendermint/tendermint/libs/log"
)

// SecurityModuleAddress is the address the security module is attached
// under.
var SecurityModuleAddress = vault.NewCondition("security", "module", []byte("v1")).Address()

// FactoryAddress returns the address accounts on given chain are derived
// from.
func FactoryAddress(chainID string) vault.Address {
	return vault.NewCondition("deployer", "factory", []byte(chainID)).Address()
}

// Operation is a state transition delivered to the runtime.
type Operation func(ctx vault.Context, db vault.KVStore) error

// Vault hosts the extensions and their state.
type Vault struct {
	Registry *registry.Directory
	Wallets  *wallet.Controller
	Deployer *deployer.Deployer
	Security *security.Module

	mu      sync.Mutex
	logger  log.Logger
	store   vault.CacheableKVStore
	chainID string
	height  int64
	clock   func() time.Time
}

// New returns a runtime for given chain with all extensions wired
// together. Its state is empty until InitChain is called.
func New(chainID string, logger log.Logger) *Vault {
	if logger == nil {
		logger = vault.DefaultLogger
	}
	dir := registry.NewDirectory()
	wallets := wallet.NewController(dir)
	sm := security.NewModule(SecurityModuleAddress, wallets)
	wallets.Attach(sm)

	return &Vault{
		Registry: dir,
		Wallets:  wallets,
		Deployer: deployer.NewDeployer(FactoryAddress(chainID), wallets),
		Security: sm,
		logger:   logger.With("module", "vault"),
		store:    store.MemStore(),
		chainID:  chainID,
		clock:    time.Now,
	}
}

// WithClock sets the source of block time.
func (v *Vault) WithClock(now func() time.Time) *Vault {
	v.mu.Lock()
	v.clock = now
	v.mu.Unlock()
	return v
}

// ChainID returns the chain the runtime was created for.
func (v *Vault) ChainID() string {
	return v.chainID
}

// InitChain loads the genesis state. The genesis chain id must match the
// runtime chain id.
func (v *Vault) InitChain(gen Genesis) error {
	if gen.ChainID != v.chainID {
		return errors.Wrapf(errors.ErrInput, "genesis for chain %q, runtime for %q", gen.ChainID, v.chainID)
	}
	inits := vault.ChainInitializers{
		&registry.Initializer{Directory: v.Registry},
		&security.Initializer{},
	}
	_, err := v.Deliver("init_chain", func(ctx vault.Context, db vault.KVStore) error {
		if err := saveChainID(db, gen.ChainID); err != nil {
			return err
		}
		return inits.FromGenesis(gen.AppOptions, db)
	})
	return err
}

// Deliver runs op alone, as a single atomic step. The returned events are
// the ones emitted by op. When op fails, none of its writes are kept and
// no events are returned.
func (v *Vault) Deliver(name string, op Operation) ([]vault.Event, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.height++
	var events vault.EventLog
	ctx := context.Background()
	ctx = vault.WithChainID(ctx, v.chainID)
	ctx = vault.WithHeight(ctx, v.height)
	ctx = vault.WithBlockTime(ctx, v.clock())
	ctx = vault.WithLogger(ctx, v.logger)
	ctx = vault.WithLogInfo(ctx, "op", name, "height", v.height)
	ctx = vault.WithEventLog(ctx, &events)

	err := utils.Logging(ctx, name, func() error {
		return utils.Savepoint(ctx, v.store, func(ctx vault.Context, db vault.KVStore) error {
			return utils.Recover(ctx, db, op)
		})
	})
	if err != nil {
		return nil, errors.Redact(err)
	}
	return events.Events(), nil
}

// Query gives read access to the committed state.
func (v *Vault) Query(fn func(db vault.ReadOnlyKVStore) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fn(v.store)
}

// StoredChainID returns the chain id written by InitChain, or an empty
// string before the chain was initialized.
func (v *Vault) StoredChainID() (string, error) {
	var id string
	err := v.Query(func(db vault.ReadOnlyKVStore) error {
		var err error
		id, err = loadChainID(db)
		return err
	})
	return id, err
}
