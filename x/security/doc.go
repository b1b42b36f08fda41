/*
Package security implements the security module: the authorization policy
of an account.

Every account that installs the module has a set of signers. Signers can
trigger and cancel a recovery of the account, lock it and unlock it. The
owner of the account can replace a signer. Any other action, including
executing a triggered recovery, is relayed through Multicall and must be
signed by every current signer over the relay digest bound to the
account sequence. A signature bundle is valid for exactly one sequence
value.
*/
package security
