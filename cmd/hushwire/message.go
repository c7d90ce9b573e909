package main

import (
	"fmt"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [plaintext]",
	Short: "Seal a message for a chat",
	Long: `Seal a message for a chat. The plaintext is read from the argument or,
when absent, from stdin. The envelope token is printed to stdout.`,
	Args:   cobra.MaximumNArgs(1),
	PreRun: bindMessageFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, chat, sender, err := messageParams()
		if err != nil {
			return err
		}
		plaintext, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		e, err := newEngine()
		if err != nil {
			return err
		}

		token, err := e.EncryptMessage(secret, chat, sender, plaintext)
		if err != nil {
			return err
		}
		jww.DEBUG.Printf("Sealed %d bytes for chat %q", len(plaintext), chat)
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [envelope]",
	Short: "Open a message sealed for a chat",
	Long: `Open an envelope token read from the argument or, when absent, from
stdin. --sender is the claimed author of the message.`,
	Args:   cobra.MaximumNArgs(1),
	PreRun: bindMessageFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, chat, sender, err := messageParams()
		if err != nil {
			return err
		}
		token, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		e, err := newEngine()
		if err != nil {
			return err
		}

		plaintext, err := e.DecryptMessage(secret, chat, sender, token)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), plaintext)
		return nil
	},
}

// bindMessageFlags binds the running command's flags, since encrypt and
// decrypt share keys.
func bindMessageFlags(cmd *cobra.Command, args []string) {
	viper.BindPFlag("secret", cmd.Flags().Lookup("secret"))
	viper.BindPFlag("chat", cmd.Flags().Lookup("chat"))
	viper.BindPFlag("sender", cmd.Flags().Lookup("sender"))
}

func messageParams() (secret, chat, sender string, err error) {
	if secret, err = requireString("secret"); err != nil {
		return
	}
	// Empty chat and sender identifiers are valid.
	chat = viper.GetString("chat")
	sender = viper.GetString("sender")
	return
}

func init() {
	for _, cmd := range []*cobra.Command{encryptCmd, decryptCmd} {
		cmd.Flags().StringP("secret", "k", "",
			"Shared secret from derive (prefer HUSHWIRE_SECRET)")
		cmd.Flags().String("chat", "",
			"Chat identifier")
		cmd.Flags().StringP("sender", "s", "",
			"Sender identifier")
		rootCmd.AddCommand(cmd)
	}
}
