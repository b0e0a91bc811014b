// Command deskctl is a terminal client for the department dashboard API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// configFile is set by the --config flag.
	configFile string
	jsonOutput bool

	// board is built from configuration before any subcommand runs.
	board *dashboardSession
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deskctl",
	Short: "Browse and edit department records",
	Long: `deskctl lists, searches and edits the records of the department dashboard:
employees, leaves, tickets, transactions, invoices, projects and campaigns.

Settings come from the environment (API_BASE_URL, API_TOKEN, PAGE_SIZE, ...),
then from deskctl.yaml, then from flags.

Examples:
  deskctl resources
  deskctl list employees --page 2
  deskctl list transactions --search cash
  deskctl create tickets --set title="VPN down" --set category=network --set priority=high
  deskctl delete invoices inv-003
  deskctl summary`,
	SilenceUsage:      true,
	PersistentPreRunE: openBoard,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if board != nil {
			board.Close()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default: ./deskctl.yaml or ~/.config/deskctl/deskctl.yaml)")
	flags.String("api", "", "API base URL")
	flags.String("token", "", "bearer token")
	flags.String("role", "", "role to act as when no token is set")
	flags.Int("page-size", 0, "rows per page")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(resourcesCmd, listCmd, getCmd, createCmd, updateCmd, deleteCmd, summaryCmd, whoamiCmd)
}
