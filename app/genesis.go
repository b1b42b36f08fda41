package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Genesis file format.
type Genesis struct {
	ChainID    string        `json:"chain_id"`
	AppOptions vault.Options `json:"app_options"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

const chainIDKey = "_vault:chain_id"

// loadChainID returns the chain id stored if any.
func loadChainID(db vault.ReadOnlyKVStore) (string, error) {
	v, err := db.Get([]byte(chainIDKey))
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name.
func saveChainID(db vault.KVStore, chainID string) error {
	if !vault.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	k := []byte(chainIDKey)
	switch has, err := db.Has(k); {
	case err != nil:
		return err
	case has:
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	return db.Set(k, []byte(chainID))
}
