package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/melih-ucgun/reef/internal/core"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview account changes without applying them",
	Long:  `Calculates the difference between the declared accounts and the cluster's current admins.`,
	Run: func(cmd *cobra.Command, args []string) {
		spinner, _ := pterm.DefaultSpinner.Start("Connecting to cluster...")
		tgt, err := connect(cmd, true)
		if err != nil {
			spinner.Fail(err.Error())
			os.Exit(1)
		}
		defer tgt.client.Close()
		spinner.UpdateText("Calculating plan...")

		plan, err := core.NewEngine(tgt.session).Plan(tgt.items)
		if err != nil {
			spinner.Fail("Planning failed: " + err.Error())
			os.Exit(1)
		}
		spinner.Success("Plan calculated")
		pterm.Println()

		if len(plan.Changes) == 0 {
			pterm.Info.Println("No changes detected. Accounts are in sync.")
			return
		}

		pterm.Println(pterm.FgCyan.Sprint("The following changes will be made:"))
		pterm.Println()
		for _, change := range plan.Changes {
			pterm.Printfln("  %s [%s] %s",
				pterm.FgGreen.Sprint("~"),
				pterm.Bold.Sprint(change.ID),
				change.Message)
		}

		pterm.Println()
		pterm.DefaultSection.Printfln("Plan: %d to change, %d skipped.", len(plan.Changes), plan.Skipped)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().String("cluster", "", "target cluster name (defaults to the first entry)")
}
