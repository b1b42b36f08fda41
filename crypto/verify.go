package crypto

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// SignatureLength is the length of a recoverable r || s || v signature.
const SignatureLength = 65

var (
	secp256k1N     = btcec.S256().N
	secp256k1HalfN = new(big.Int).Rsh(secp256k1N, 1)
)

// Verify returns the identity that produced given signature of the digest.
//
// The signature must be 65 bytes long, r || s || v, with v being 0, 1, 27
// or 28. Signatures with a high S value are rejected so that a signature
// cannot be altered into another valid one.
func Verify(digest []byte, sig []byte) (vault.Address, error) {
	if len(digest) != DigestLength {
		return nil, errors.Wrapf(errors.ErrInput, "digest must be %d bytes", DigestLength)
	}
	if len(sig) != SignatureLength {
		return nil, errors.Wrapf(errors.ErrInvalidSignature, "signature must be %d bytes, got %d", SignatureLength, len(sig))
	}

	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return nil, errors.Wrapf(errors.ErrInvalidSignature, "invalid recovery id %d", sig[64])
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if r.Sign() == 0 || s.Sign() == 0 || r.Cmp(secp256k1N) >= 0 || s.Cmp(secp256k1N) >= 0 {
		return nil, errors.Wrap(errors.ErrInvalidSignature, "r or s out of range")
	}
	if s.Cmp(secp256k1HalfN) > 0 {
		return nil, errors.Wrap(errors.ErrInvalidSignature, "malleable signature, high s")
	}

	compact := make([]byte, SignatureLength)
	compact[0] = 27 + v
	copy(compact[1:], sig[:64])
	pub, _, err := btcec.RecoverCompact(btcec.S256(), compact, digest)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidSignature, "recover: %s", err)
	}
	return pubKeyAddress(pub), nil
}

// CollectQuorum recovers the identity of every signature and checks that
// together they are exactly the required signer set: one signature per
// required signer and none from outside of it.
//
// Recovered identities are returned in the order of the signatures.
func CollectQuorum(digest []byte, sigs [][]byte, required []vault.Address) ([]vault.Address, error) {
	members := make(map[string]struct{}, len(required))
	for _, r := range required {
		members[string(r)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(sigs))
	signers := make([]vault.Address, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := Verify(digest, sig)
		if err != nil {
			return nil, errors.Wrapf(err, "signature #%d", i)
		}
		if _, ok := seen[string(signer)]; ok {
			return nil, errors.Wrapf(errors.ErrDuplicateSigner, "signature #%d: %s", i, signer)
		}
		seen[string(signer)] = struct{}{}
		if _, ok := members[string(signer)]; !ok {
			return nil, errors.Wrapf(errors.ErrNotASigner, "signature #%d: %s", i, signer)
		}
		signers = append(signers, signer)
	}

	if len(signers) != len(members) {
		return nil, errors.Wrapf(errors.ErrQuorumNotMet, "got %d of %d signatures", len(signers), len(members))
	}
	return signers, nil
}
