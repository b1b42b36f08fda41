/*
Package deployer derives account addresses and creates accounts at them.

An account address is computed from the factory address, an account
template and a 32 byte salt, the same way CREATE2 derives contract
addresses. The address is known before the account exists, so it can be
funded first and created later. Each derived address can be created only
once.
*/
package deployer
