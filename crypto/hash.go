package crypto

import (
	"encoding/binary"

	"github.com/iov-one/vault"
	"golang.org/x/crypto/sha3"
)

// DigestLength is the length of all digests that can be signed.
const DigestLength = 32

// Keccak256 returns the legacy (pre-standard) keccak256 hash of the
// concatenated data.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// RelayDigest returns the digest that the signers of a relayed action sign.
//
// The layout follows EIP-191 version 0 ("intended validator"):
//
//   0x19 | 0x00 | module | account | target | value   | data     | sequence
//   1    | 1    | 20     | 20      | 20     | uint256 | variable | uint256
//
// Binding the module and the account means a signature bundle cannot be
// replayed against another module instance or another account, binding the
// sequence means it cannot be replayed on the same account.
func RelayDigest(module, account, target vault.Address, value uint64, data []byte, sequence uint64) []byte {
	return Keccak256(
		[]byte{0x19, 0x00},
		module,
		account,
		target,
		uint256(value),
		data,
		uint256(sequence),
	)
}

// Create2Address returns the address of an account created by deployer from
// init code with given hash and salt:
//
//   keccak256(0xff | deployer | salt | initCodeHash)[12:]
func Create2Address(deployer vault.Address, salt [32]byte, initCodeHash []byte) vault.Address {
	h := Keccak256([]byte{0xff}, deployer, salt[:], initCodeHash)
	return vault.Address(h[len(h)-vault.AddressLength:])
}

// uint256 encodes n as a 32 byte big endian integer.
func uint256(n uint64) []byte {
	b := make([]byte, 32)
	binary.BigEndian.PutUint64(b[24:], n)
	return b
}
