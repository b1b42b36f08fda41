// vaultcli is an offline helper for wallet front-ends and relay services.
// It generates signer keys, predicts account addresses, builds relay
// digests and signs them.
//
// Every flag can also be set through the environment, using the VAULT_
// prefix, for example VAULT_CHAIN_ID or VAULT_KEY.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
