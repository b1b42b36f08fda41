package main

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagChainID   = "chain-id"
	flagFactory   = "factory"
	flagTemplate  = "template"
	flagSalt      = "salt"
	flagModule    = "module"
	flagAccount   = "account"
	flagTarget    = "target"
	flagValue     = "value"
	flagData      = "data"
	flagSequence  = "sequence"
	flagRecovery  = "recovery"
	flagKey       = "key"
	flagDigest    = "digest"
	flagSignature = "signature"
	flagSigner    = "signer"
)

// newRootCmd returns the vaultcli command tree. Each tree has its own viper
// instance, flags are bound to it before a command runs.
func newRootCmd() *cobra.Command {
	conf := viper.New()
	conf.SetEnvPrefix("VAULT")
	conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	conf.AutomaticEnv()

	root := &cobra.Command{
		Use:           "vaultcli",
		Short:         "Offline tooling for vault accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return conf.BindPFlags(cmd.Flags())
		},
	}
	root.PersistentFlags().String(flagChainID, "", "chain the account lives on")

	root.AddCommand(
		keygenCmd(conf),
		recoverCmd(conf),
		addressCmd(conf),
		initDataCmd(conf),
		digestCmd(conf),
		signCmd(conf),
	)
	return root
}

// address reads an address flag. An empty value is an error if required.
func address(conf *viper.Viper, flag string, required bool) (vault.Address, error) {
	enc := conf.GetString(flag)
	if enc == "" {
		if required {
			return nil, errors.Wrapf(errors.ErrInput, "--%s is required", flag)
		}
		return nil, nil
	}
	addr, err := vault.ParseAddress(enc)
	if err != nil {
		return nil, errors.Wrapf(err, "--%s", flag)
	}
	return addr, nil
}

// hexBytes reads a hex encoded flag, with or without a 0x prefix.
func hexBytes(conf *viper.Viper, flag string) ([]byte, error) {
	enc := strings.TrimPrefix(conf.GetString(flag), "0x")
	raw, err := hex.DecodeString(enc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "--%s: %s", flag, err)
	}
	return raw, nil
}
