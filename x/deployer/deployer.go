package deployer

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// proxyCode prefixes the template address in the init code of every
// account. Changing it changes all derived addresses.
const proxyCode = "vault/proxy/v1"

// Accounts creates the ledger record of a new account.
type Accounts interface {
	Create(db vault.KVStore, account vault.Address) error
}

// Deployer creates accounts at deterministic addresses.
type Deployer struct {
	factory  vault.Address
	accounts Accounts
	bucket   orm.ModelBucket
}

// NewDeployer returns a deployer deriving addresses from factory.
func NewDeployer(factory vault.Address, accounts Accounts) *Deployer {
	if err := factory.Validate(); err != nil {
		panic(err)
	}
	return &Deployer{
		factory:  factory,
		accounts: accounts,
		bucket:   orm.NewModelBucket("deploy", &Deployment{}),
	}
}

// Factory returns the address all accounts are derived from.
func (d *Deployer) Factory() vault.Address {
	return d.factory
}

// InitCode returns the code an account for given template is created from.
func InitCode(template vault.Address) []byte {
	code := make([]byte, 0, len(proxyCode)+len(template))
	code = append(code, proxyCode...)
	return append(code, template...)
}

// AddressFor returns the address an account created from template and salt
// has. The result does not depend on whether the account exists.
func (d *Deployer) AddressFor(template vault.Address, salt [32]byte) vault.Address {
	return AddressFor(d.factory, template, salt)
}

// AddressFor returns the address of an account created by factory from
// template and salt.
func AddressFor(factory, template vault.Address, salt [32]byte) vault.Address {
	return crypto.Create2Address(factory, salt, crypto.Keccak256(InitCode(template)))
}

// Create creates an uninitialized account at AddressFor(template, salt).
// It fails with ErrAlreadyCreated if that address was created before.
func (d *Deployer) Create(ctx vault.Context, db vault.KVStore, template vault.Address, salt [32]byte) (vault.Address, error) {
	if err := template.Validate(); err != nil {
		return nil, errors.Wrap(err, "template")
	}
	addr := d.AddressFor(template, salt)

	switch err := d.bucket.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrAlreadyCreated, "account %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	now, err := vault.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	dep := Deployment{
		Template:  template.Clone(),
		Salt:      append([]byte(nil), salt[:]...),
		Address:   addr,
		CreatedAt: vault.AsUnixTime(now),
	}
	if err := d.bucket.Put(db, addr, &dep); err != nil {
		return nil, errors.Wrap(err, "save deployment")
	}
	if err := d.accounts.Create(db, addr); err != nil {
		return nil, errors.Wrap(err, "create account")
	}
	vault.EmitEvent(ctx, "account_created", "account", addr, "template", template)
	return addr, nil
}

// Deployment returns the creation record of an account.
func (d *Deployer) Deployment(db vault.ReadOnlyKVStore, account vault.Address) (*Deployment, error) {
	var dep Deployment
	if err := d.bucket.One(db, account, &dep); err != nil {
		return nil, errors.Wrapf(err, "deployment %s", account)
	}
	return &dep, nil
}
