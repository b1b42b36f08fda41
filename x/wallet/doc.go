/*
Package wallet implements the account ledger that security modules act on.

An account is created empty at a deterministic address, then initialized
exactly once. Initialization sets the owner and installs a list of
modules. From then on only installed modules may advance the account
sequence, replace its owner, or execute calls on its behalf.

Account balances are plain amounts kept per address. Executing a call
moves value from the account to the target and, when call data is given,
dispatches it to the callee registered for the target address.
*/
package wallet
