package expense

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
	"fjacquet/expense-cli/internal/currencyutils"
	"fjacquet/expense-cli/internal/dateutils"
	"fjacquet/expense-cli/internal/ledger"
)

var (
	addAmount   string
	addCategory string
	addDate     string
	addTags     []string
	addNotes    string
)

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a new expense",
	Args:  cobra.MinimumNArgs(1),
	Run:   addFunc,
}

func init() {
	addCmd.Flags().StringVarP(&addAmount, "amount", "a", "", "Expense amount (required)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Expense category")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Expense date (defaults to today)")
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "t", nil, "Comma-separated tags")
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "Free-form notes")
	if err := addCmd.MarkFlagRequired("amount"); err != nil {
		panic(err)
	}
}

func addFunc(cmd *cobra.Command, args []string) {
	description := strings.Join(args, " ")

	amount, err := currencyutils.ParseAmount(addAmount)
	if err != nil {
		root.Log.Fatalf("Invalid amount %q: %v", addAmount, err)
	}

	opts := ledger.AddOptions{
		Tags:  addTags,
		Notes: addNotes,
	}
	if addDate != "" {
		date, err := dateutils.ParseDateString(addDate)
		if err != nil {
			root.Log.Fatalf("Invalid date %q: %v", addDate, err)
		}
		opts.Date = date
	}

	exp, err := root.OpenLedger().AddExpense(description, amount, addCategory, opts)
	if err != nil {
		root.Log.Fatalf("Error adding expense: %v", err)
	}

	fmt.Printf("Added expense #%d: %s (%s %s, %s)\n",
		exp.ID, exp.Description,
		currencyutils.FormatAmount(exp.Amount), root.Cfg.Currency.Base,
		exp.Category)
}
