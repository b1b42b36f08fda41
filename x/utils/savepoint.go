package utils

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Savepoint will isolate all data written by fn and commit it only if fn
// returns no error. On error everything fn wrote is rolled back.
//
// A store that cannot be cache wrapped is used directly.
func Savepoint(ctx vault.Context, db vault.KVStore, fn func(vault.Context, vault.KVStore) error) error {
	cstore, ok := db.(vault.CacheableKVStore)
	if !ok {
		return fn(ctx, db)
	}

	cache := cstore.CacheWrap()
	if err := fn(ctx, cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}

// Recover runs fn and converts a panic into an ErrPanic error.
func Recover(ctx vault.Context, db vault.KVStore, fn func(vault.Context, vault.KVStore) error) (err error) {
	defer errors.Recover(&err)
	return fn(ctx, db)
}
