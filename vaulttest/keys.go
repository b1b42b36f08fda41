package vaulttest

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
)

// NewKey returns a random signer key.
func NewKey() *crypto.PrivKey {
	return crypto.GenPrivKey()
}

// Sign signs the digest with all keys, in order. The test fails if any
// signature cannot be created.
func Sign(t testing.TB, digest []byte, keys ...crypto.Signer) [][]byte {
	t.Helper()
	sigs := make([][]byte, 0, len(keys))
	for _, k := range keys {
		sig, err := k.Sign(digest)
		if err != nil {
			t.Fatalf("cannot sign with %s: %s", k.Address(), err)
		}
		sigs = append(sigs, sig)
	}
	return sigs
}

// Addresses returns the addresses of given keys, in order.
func Addresses(keys ...crypto.Signer) []vault.Address {
	addrs := make([]vault.Address, len(keys))
	for i, k := range keys {
		addrs[i] = k.Address()
	}
	return addrs
}
