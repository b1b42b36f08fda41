package crypto

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Signer is the functionality we use from a private key.
// No serializing to support hardware devices as well.
type Signer interface {
	// Sign returns a recoverable signature of a 32 byte digest.
	Sign(digest []byte) ([]byte, error)
	Address() vault.Address
}

// PrivKey is a secp256k1 private key.
type PrivKey struct {
	key *btcec.PrivateKey
}

var _ Signer = (*PrivKey)(nil)

// GenPrivKey returns a random new private key.
func GenPrivKey() *PrivKey {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		panic(err)
	}
	return &PrivKey{key: key}
}

// PrivKeyFromBytes loads a private key from its 32 byte scalar.
func PrivKeyFromBytes(raw []byte) (*PrivKey, error) {
	if len(raw) != 32 {
		return nil, errors.Wrapf(errors.ErrInput, "private key must be 32 bytes, got %d", len(raw))
	}
	key, _ := btcec.PrivKeyFromBytes(btcec.S256(), raw)
	if key.D.Sign() == 0 || key.D.Cmp(btcec.S256().N) >= 0 {
		return nil, errors.Wrap(errors.ErrInput, "private key out of range")
	}
	return &PrivKey{key: key}, nil
}

// PrivKeyFromHex loads a private key from its hex encoded scalar.
func PrivKeyFromHex(enc string) (*PrivKey, error) {
	raw, err := hex.DecodeString(trimHex(enc))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	return PrivKeyFromBytes(raw)
}

// Bytes returns the 32 byte scalar of this key.
func (p *PrivKey) Bytes() []byte {
	raw := p.key.D.Bytes()
	if len(raw) == 32 {
		return raw
	}
	padded := make([]byte, 32)
	copy(padded[32-len(raw):], raw)
	return padded
}

// Address returns the identity that signatures of this key recover to.
func (p *PrivKey) Address() vault.Address {
	return pubKeyAddress(p.key.PubKey())
}

// Sign returns a 65 byte r || s || v signature of given digest. v is 27 or
// 28. Signatures are deterministic (RFC6979) and always use the low S form.
func (p *PrivKey) Sign(digest []byte) ([]byte, error) {
	if len(digest) != DigestLength {
		return nil, errors.Wrapf(errors.ErrInput, "digest must be %d bytes", DigestLength)
	}
	compact, err := btcec.SignCompact(btcec.S256(), p.key, digest, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "sign: %s", err)
	}
	// btcec produces v || r || s, relayed signatures are r || s || v.
	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[64] = compact[0]
	return sig, nil
}

// pubKeyAddress is the keccak256 hash of the uncompressed public key, without
// its 0x04 prefix, truncated to the last 20 bytes.
func pubKeyAddress(pub *btcec.PublicKey) vault.Address {
	raw := pub.SerializeUncompressed()
	h := Keccak256(raw[1:])
	return vault.Address(h[len(h)-vault.AddressLength:])
}

func trimHex(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
