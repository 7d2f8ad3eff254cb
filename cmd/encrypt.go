package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/melih-ucgun/reef/internal/crypto"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [value]",
	Short: "Encrypt a secret for embedding in reef.yaml",
	Long: `Encrypts a value with the master key (REEF_MASTER_KEY) and prints the
sealed form. Paste the output into any password field of reef.yaml; it is
decrypted transparently when the config is loaded.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := os.Getenv("REEF_MASTER_KEY")
		if key == "" {
			var err error
			key, err = pterm.DefaultInteractiveTextInput.
				WithMask("*").
				WithDefaultText("Master key").
				Show()
			if err != nil || key == "" {
				pterm.Error.Println("A master key is required.")
				os.Exit(1)
			}
		}

		var value string
		if len(args) > 0 {
			value = args[0]
		} else {
			var err error
			value, err = pterm.DefaultInteractiveTextInput.
				WithMask("*").
				WithDefaultText("Value to encrypt").
				Show()
			if err != nil || value == "" {
				pterm.Error.Println("Nothing to encrypt.")
				os.Exit(1)
			}
		}

		sealed, err := crypto.Encrypt(value, key)
		if err != nil {
			pterm.Error.Printfln("Encryption failed: %v", err)
			os.Exit(1)
		}

		pterm.Println(sealed)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
}
