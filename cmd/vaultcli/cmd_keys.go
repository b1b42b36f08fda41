package main

import (
	"encoding/hex"
	"fmt"

	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func keygenCmd(conf *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new signer key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := crypto.GenPrivKey()
			fmt.Fprintf(cmd.OutOrStdout(), "key: %x\naddress: %s\n", key.Bytes(), key.Address())
			return nil
		},
	}
}

func signCmd(conf *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a relay digest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.PrivKeyFromHex(conf.GetString(flagKey))
			if err != nil {
				return errors.Wrapf(err, "--%s", flagKey)
			}
			digest, err := hexBytes(conf, flagDigest)
			if err != nil {
				return err
			}
			sig, err := key.Sign(digest)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "0x"+hex.EncodeToString(sig))
			return nil
		},
	}
	cmd.Flags().String(flagKey, "", "hex encoded private key")
	cmd.Flags().String(flagDigest, "", "hex encoded 32 byte digest")
	return cmd
}

func recoverCmd(conf *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Print the address that produced a signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			digest, err := hexBytes(conf, flagDigest)
			if err != nil {
				return err
			}
			sig, err := hexBytes(conf, flagSignature)
			if err != nil {
				return err
			}
			addr, err := crypto.Verify(digest, sig)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}
	cmd.Flags().String(flagDigest, "", "hex encoded 32 byte digest")
	cmd.Flags().String(flagSignature, "", "hex encoded 65 byte signature")
	return cmd
}
