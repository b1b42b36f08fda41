package main

import (
	"encoding/hex"
	"fmt"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/deployer"
	"github.com/iov-one/vault/x/security"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func addressCmd(conf *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Predict the address of an account before it is created",
		Long: `Predict the address of an account before it is created.

The factory is given directly or derived from --chain-id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := address(conf, flagFactory, false)
			if err != nil {
				return err
			}
			if factory == nil {
				chainID := conf.GetString(flagChainID)
				if !vault.IsValidChainID(chainID) {
					return errors.Wrapf(errors.ErrInput, "--%s or a valid --%s is required", flagFactory, flagChainID)
				}
				factory = app.FactoryAddress(chainID)
			}
			template, err := address(conf, flagTemplate, true)
			if err != nil {
				return err
			}
			salt, err := deployer.ParseSalt(conf.GetString(flagSalt))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), deployer.AddressFor(factory, template, salt))
			return nil
		},
	}
	cmd.Flags().String(flagFactory, "", "factory address")
	cmd.Flags().String(flagTemplate, "", "account template address")
	cmd.Flags().String(flagSalt, "", "salt, text or 0x prefixed 32 byte hex")
	return cmd
}

func initDataCmd(conf *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initdata",
		Short: "Build the security module init payload for a signer set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var signers []vault.Address
			for _, enc := range conf.GetStringSlice(flagSigner) {
				addr, err := vault.ParseAddress(enc)
				if err != nil {
					return errors.Wrapf(err, "--%s", flagSigner)
				}
				signers = append(signers, addr)
			}
			data, err := security.NewInitData(signers)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "0x"+hex.EncodeToString(data))
			return nil
		},
	}
	cmd.Flags().StringSlice(flagSigner, nil, "signer address, repeat for every signer")
	return cmd
}

func digestCmd(conf *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Build the digest signers sign to authorize a relayed action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := address(conf, flagModule, false)
			if err != nil {
				return err
			}
			if module == nil {
				module = app.SecurityModuleAddress
			}
			account, err := address(conf, flagAccount, true)
			if err != nil {
				return err
			}

			var (
				target vault.Address
				data   []byte
			)
			if conf.GetBool(flagRecovery) {
				target = module
				if data, err = security.ExecuteRecoveryData(account); err != nil {
					return err
				}
			} else {
				if target, err = address(conf, flagTarget, true); err != nil {
					return err
				}
				if data, err = hexBytes(conf, flagData); err != nil {
					return err
				}
			}

			digest := crypto.RelayDigest(module, account, target, uint64(conf.GetInt(flagValue)), data, uint64(conf.GetInt(flagSequence)))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "target: %s\n", target)
			fmt.Fprintf(out, "data: 0x%x\n", data)
			fmt.Fprintf(out, "digest: 0x%x\n", digest)
			return nil
		},
	}
	cmd.Flags().String(flagModule, "", "security module address, the runtime module by default")
	cmd.Flags().String(flagAccount, "", "account address")
	cmd.Flags().String(flagTarget, "", "call target address")
	cmd.Flags().Uint64(flagValue, 0, "value moved to the target")
	cmd.Flags().String(flagData, "", "hex encoded call data")
	cmd.Flags().Uint64(flagSequence, 0, "current account sequence")
	cmd.Flags().Bool(flagRecovery, false, "build the action executing a triggered recovery")
	return cmd
}
