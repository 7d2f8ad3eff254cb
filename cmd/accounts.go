package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Inspect admin accounts on the cluster",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cluster's admin accounts",
	Run: func(cmd *cobra.Command, args []string) {
		tgt, err := connect(cmd, true)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		defer tgt.client.Close()

		admins, err := tgt.client.ListClusterAdmins(tgt.session)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}

		data := [][]string{{"ID", "USERNAME", "AUTH", "ACCESS"}}
		for _, admin := range admins {
			data = append(data, []string{
				strconv.FormatInt(admin.ID, 10),
				admin.Username,
				admin.AuthMethod,
				strings.Join(admin.Access, ","),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsListCmd)
	accountsListCmd.Flags().String("cluster", "", "target cluster name (defaults to the first entry)")
}
