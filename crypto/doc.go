/*
Package crypto implements signature verification for relayed actions.

Signers use secp256k1 keys. A signature is the 65 byte recoverable form
r || s || v, and the signer identity is recovered from the signature and
the signed digest, so a relayed action carries no public keys. Identities
are the last 20 bytes of the keccak256 hash of the uncompressed public key.

Digests are keccak256 hashes of domain separated byte strings, see
RelayDigest and Create2Address.
*/
package crypto
