package security

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

var _ vault.Initializer = (*Initializer)(nil)

// FromGenesis stores the module configuration. The configuration is
// optional, without it recoveries execute without delay.
func (*Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	err := gconf.InitConfig(db, opts, packageName, &Configuration{})
	if err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}
	return nil
}
