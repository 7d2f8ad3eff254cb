package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reef",
	Short: "Declarative admin account management for storage clusters",
	Long: `Reef reconciles the administrator accounts declared in reef.yaml against
a storage cluster: it looks up each account by id, compares permissions,
and performs at most one create, update or delete per account.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "reef.yaml", "config file path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}
