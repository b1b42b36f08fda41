package gconf

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// OwnedConfig must have an Owner field. A configuration update must be
// requested by the current owner in order to be authorized.
type OwnedConfig interface {
	Configuration
	GetOwner() vault.Address
}

// Update replaces the configuration of given package with next. The caller
// must be the owner declared by the currently stored configuration. The
// current configuration is loaded into cur, which must be of the same type
// as next.
func Update(db vault.KVStore, pkg string, caller vault.Address, cur, next OwnedConfig) error {
	if err := Load(db, pkg, cur); err != nil {
		return errors.Wrap(err, "load current configuration")
	}
	if !cur.GetOwner().Equals(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the %s configuration owner", caller, pkg)
	}
	return Save(db, pkg, next)
}
