/*
Package store provides the in-memory key value store used by the vault
runtime and by tests.

Data lives in a google/btree. Writes can be layered with CacheWrap: a
cache wrap sees its parent data plus its own uncommitted writes, and
either Write()s them to the parent or Discard()s them. This gives every
operation all-or-nothing semantics, the same way a database SAVEPOINT
does.
*/
package store
