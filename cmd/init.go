package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter reef.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		if _, err := os.Stat(configPath); err == nil {
			pterm.Error.Printfln("%s already exists, refusing to overwrite.", configPath)
			os.Exit(1)
		}

		if err := os.WriteFile(configPath, []byte(starterConfig), 0600); err != nil {
			pterm.Error.Printfln("Failed to write %s: %v", configPath, err)
			os.Exit(1)
		}

		pterm.Success.Printfln("Wrote %s", configPath)
		pterm.Info.Println("Edit the cluster entry, then run 'reef plan' to preview changes.")
	},
}

const starterConfig = `# Reef configuration.
# Secrets can come from a .env file next to this one ($VAR expansion) or be
# sealed with 'reef encrypt' (REEF[age]:... values).

clusters:
  - name: prod
    mvip: 10.0.0.5
    # api_version: "12.3"
    username: admin
    password: $SF_ADMIN_PASSWORD

accounts:
  # Roles map to permission sets: administrator, system engineer; any other
  # role gets the conservative default (nodes, accounts, drives). An explicit
  # 'access:' list overrides the role.
  - name: ops1
    state: present
    user_type: cluster
    role: administrator
    password: $OPS1_PASSWORD
    # Note: the cluster never returns a comparable credential, so an account
    # with a password set is rewritten on every apply. Omit the password on
    # steady-state entries to keep applies idempotent.

  - name: auditors
    state: present
    user_type: ldap
    role: system engineer
    # when: 'Cluster == "prod"'

  # Addressing an existing account by id:
  # - id: 7
  #   state: absent
`

func init() {
	rootCmd.AddCommand(initCmd)
}
