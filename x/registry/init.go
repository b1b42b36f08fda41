package registry

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct {
	Directory *Directory
}

var _ vault.Initializer = (*Initializer)(nil)

// FromGenesis stores the directory configuration and registers all modules
// listed under the "registry" key.
func (i *Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	if err := gconf.InitConfig(db, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var genesis struct {
		Modules []struct {
			Name    string        `json:"name"`
			Address vault.Address `json:"address"`
		} `json:"modules"`
	}
	if err := opts.ReadOptions(packageName, &genesis); err != nil {
		return err
	}
	for j, m := range genesis.Modules {
		if err := i.Directory.put(db, &Entry{Name: m.Name, Module: m.Address}); err != nil {
			return errors.Wrapf(err, "module at position %d", j)
		}
	}
	return nil
}
