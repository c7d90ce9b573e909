package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"github.com/hushwire/hushwire/hushwire"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an identity key pair",
	Long: `Generate an X25519 identity key pair. The public key is printed to
stdout. The private key is written to --out with mode 0600, or printed
when --out is not set.`,
	Args: cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("out", cmd.Flags().Lookup("out"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		kp, err := e.GenerateKeyPair()
		if err != nil {
			return err
		}

		fp, err := hushwire.Fingerprint(kp.PublicKey)
		if err != nil {
			return err
		}
		jww.INFO.Printf("Fingerprint: %s", fp)

		out := viper.GetString("out")
		if out == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "private: %s\npublic:  %s\n", kp.PrivateKey, kp.PublicKey)
			return nil
		}
		if err := os.WriteFile(out, []byte(kp.PrivateKey+"\n"), 0600); err != nil {
			return errors.Wrapf(err, "write private key to %s", out)
		}
		jww.INFO.Printf("Private key written to %s", out)
		fmt.Fprintln(cmd.OutOrStdout(), kp.PublicKey)
		return nil
	},
}

func init() {
	keygenCmd.Flags().StringP("out", "o", "",
		"Write the private key to this file instead of stdout")
	rootCmd.AddCommand(keygenCmd)
}
