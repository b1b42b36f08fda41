/*
Package app composes the vault extensions into a runtime.

The runtime owns the state and serializes every state mutating operation.
Each operation runs inside a savepoint: it either commits all of its
writes or none of them, and events are returned only for committed
operations.
*/
package app
