package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive the secret shared with a peer",
	Args:  cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("private", cmd.Flags().Lookup("private"))
		viper.BindPFlag("privateFile", cmd.Flags().Lookup("privateFile"))
		viper.BindPFlag("peer", cmd.Flags().Lookup("peer"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}

		private := viper.GetString("private")
		if path := viper.GetString("privateFile"); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "read private key from %s", path)
			}
			private = strings.TrimSpace(string(b))
		}
		if private == "" {
			return errors.New("--private, --privateFile or HUSHWIRE_PRIVATE is required")
		}
		peer, err := requireString("peer")
		if err != nil {
			return err
		}

		secret, err := e.DeriveSharedSecret(private, peer)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), secret)
		return nil
	},
}

func init() {
	deriveCmd.Flags().StringP("private", "k", "",
		"Own private key (prefer --privateFile or HUSHWIRE_PRIVATE)")
	deriveCmd.Flags().String("privateFile", "",
		"File holding the own private key, as written by keygen --out")
	deriveCmd.Flags().StringP("peer", "p", "",
		"Peer public key")
	rootCmd.AddCommand(deriveCmd)
}
