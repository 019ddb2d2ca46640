package expense

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	Run:     deleteFunc,
}

func deleteFunc(cmd *cobra.Command, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		root.Log.Fatalf("Invalid expense ID %q", args[0])
	}

	exp, err := root.OpenLedger().DeleteExpense(id)
	if err != nil {
		root.Log.Fatalf("Error deleting expense: %v", err)
	}
	fmt.Printf("Deleted expense #%d: %s\n", exp.ID, exp.Description)
}
