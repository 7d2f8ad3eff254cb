package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/melih-ucgun/reef/internal/core"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Converge the cluster's admin accounts to the declared state",
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if dryRun {
			pterm.Info.Println("[dry-run] no changes will be applied to the cluster")
		}

		spinner, _ := pterm.DefaultSpinner.Start("Connecting to cluster...")
		tgt, err := connect(cmd, dryRun)
		if err != nil {
			spinner.Fail(err.Error())
			os.Exit(1)
		}
		defer tgt.client.Close()
		spinner.Success("Connected to " + tgt.session.Cluster)

		pterm.Printfln("Reconciling %d accounts against %s (%s)",
			len(tgt.items), tgt.session.Cluster, tgt.cluster.MVIP)
		pterm.Println()

		if err := core.NewEngine(tgt.session).Run(tgt.items); err != nil {
			pterm.Println()
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolP("dry-run", "d", false, "report pending changes without applying them")
	applyCmd.Flags().String("cluster", "", "target cluster name (defaults to the first entry)")
}
