package expense

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
	"fjacquet/expense-cli/internal/currencyutils"
	"fjacquet/expense-cli/internal/dateutils"
	"fjacquet/expense-cli/internal/ledger"
)

var (
	updateDescription string
	updateAmount      string
	updateCategory    string
	updateDate        string
	updateTags        []string
	updateNotes       string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an existing expense",
	Long:  `Update one or more fields of an expense. Omitted flags leave the field unchanged.`,
	Args:  cobra.ExactArgs(1),
	Run:   updateFunc,
}

func init() {
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	updateCmd.Flags().StringVarP(&updateAmount, "amount", "a", "", "New amount")
	updateCmd.Flags().StringVarP(&updateCategory, "category", "c", "", "New category")
	updateCmd.Flags().StringVarP(&updateDate, "date", "d", "", "New date")
	updateCmd.Flags().StringSliceVarP(&updateTags, "tags", "t", nil, "Replacement tags")
	updateCmd.Flags().StringVarP(&updateNotes, "notes", "n", "", "New notes")
}

func updateFunc(cmd *cobra.Command, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		root.Log.Fatalf("Invalid expense ID %q", args[0])
	}

	var fields ledger.UpdateFields
	if cmd.Flags().Changed("description") {
		fields.Description = &updateDescription
	}
	if cmd.Flags().Changed("amount") {
		amount, err := currencyutils.ParseAmount(updateAmount)
		if err != nil {
			root.Log.Fatalf("Invalid amount %q: %v", updateAmount, err)
		}
		fields.Amount = &amount
	}
	if cmd.Flags().Changed("category") {
		fields.Category = &updateCategory
	}
	if cmd.Flags().Changed("date") {
		date, err := dateutils.ParseDateString(updateDate)
		if err != nil {
			root.Log.Fatalf("Invalid date %q: %v", updateDate, err)
		}
		fields.Date = &date
	}
	if cmd.Flags().Changed("tags") {
		fields.Tags = updateTags
	}
	if cmd.Flags().Changed("notes") {
		fields.Notes = &updateNotes
	}

	exp, err := root.OpenLedger().UpdateExpense(id, fields)
	if err != nil {
		root.Log.Fatalf("Error updating expense: %v", err)
	}

	fmt.Printf("Updated expense #%d: %s\n", exp.ID, exp.Description)
}
