package deployer

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/vault/errors"
)

// SaltLength is the length of a salt in bytes.
const SaltLength = 32

// ParseSalt reads a salt from its human readable form. A 0x prefixed value
// is decoded as 32 bytes of hex, anything else is taken as text of at most
// 31 bytes, right padded with zeros.
func ParseSalt(s string) ([32]byte, error) {
	var salt [32]byte
	if strings.HasPrefix(s, "0x") {
		raw, err := hex.DecodeString(s[2:])
		if err != nil {
			return salt, errors.Wrapf(errors.ErrInput, "salt hex: %s", err)
		}
		if len(raw) != SaltLength {
			return salt, errors.Wrapf(errors.ErrInput, "salt must be %d bytes", SaltLength)
		}
		copy(salt[:], raw)
		return salt, nil
	}
	// bytes32 string encoding, the last byte is always zero
	if len(s) > SaltLength-1 {
		return salt, errors.Wrapf(errors.ErrInput, "text salt longer than %d bytes", SaltLength-1)
	}
	copy(salt[:], s)
	return salt, nil
}
