/*
Package vault defines the common interfaces shared by the vault
extensions, as well as implementations of some of the simpler
components (when interfaces would be too much overhead).

We pass context through context.Context between the host runtime and
the extensions. vault defines some common keys to store info, such as
block height, block time and chain id. Each extension may add its own
keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T
that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).

There is no ambient transaction sender. Every operation that depends on
who requested it receives the caller identity as an explicit argument,
resolved by the host boundary before entering the extension logic.
*/
package vault
