// Package expense handles the expense recording commands
package expense

import (
	"github.com/spf13/cobra"
)

// Cmd represents the expense command
var Cmd = &cobra.Command{
	Use:   "expense",
	Short: "Record and manage expenses",
	Long:  `Add, update, delete and list the expenses stored in the ledger.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(suggestCmd)
}
