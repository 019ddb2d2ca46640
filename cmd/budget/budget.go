// Package budget handles the monthly budget commands
package budget

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
	"fjacquet/expense-cli/internal/currencyutils"
	"fjacquet/expense-cli/internal/dateutils"
	"fjacquet/expense-cli/internal/report"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage monthly budgets for the current year",
}

var setCmd = &cobra.Command{
	Use:   "set <month> <amount>",
	Short: "Set the budget for a month of the current year",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		month := parseMonth(args[0])
		amount, err := currencyutils.ParseAmount(args[1])
		if err != nil {
			root.Log.Fatalf("Invalid amount %q: %v", args[1], err)
		}

		if err := root.OpenLedger().SetBudget(month, amount); err != nil {
			root.Log.Fatalf("Error setting budget: %v", err)
		}
		fmt.Printf("Budget for %s set to %s %s\n",
			dateutils.MonthName(month), currencyutils.FormatAmount(amount), root.Cfg.Currency.Base)
	},
}

var viewCmd = &cobra.Command{
	Use:   "view [month]",
	Short: "View budgets for the current year",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		l := root.OpenLedger()

		if len(args) == 1 {
			month := parseMonth(args[0])
			amount, err := l.ViewBudget(month)
			if err != nil {
				root.Log.Fatalf("Error viewing budget: %v", err)
			}
			fmt.Printf("%s: %s %s\n",
				dateutils.MonthName(month), currencyutils.FormatAmount(amount), root.Cfg.Currency.Base)
			return
		}

		budgets, err := l.ViewBudgets()
		if err != nil {
			root.Log.Fatalf("Error viewing budgets: %v", err)
		}
		if len(budgets) == 0 {
			fmt.Println("No budgets set")
			return
		}

		months := make([]int, 0, len(budgets))
		for month := range budgets {
			months = append(months, month)
		}
		sort.Ints(months)
		for _, month := range months {
			fmt.Printf("%s: %s %s\n",
				dateutils.MonthName(month), currencyutils.FormatAmount(budgets[month]), root.Cfg.Currency.Base)
		}
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <month>",
	Short: "Show spending against the budget for a month",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		month := parseMonth(args[0])
		status, err := root.OpenLedger().BudgetStatus(month)
		if err != nil {
			root.Log.Fatalf("Error computing budget status: %v", err)
		}
		fmt.Print(report.RenderBudgetStatus(status, root.Cfg.Currency.Base))
	},
}

func parseMonth(arg string) int {
	month, err := strconv.Atoi(arg)
	if err != nil || month < 1 || month > 12 {
		root.Log.Fatalf("Invalid month %q: must be 1-12", arg)
	}
	return month
}

func init() {
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(viewCmd)
	Cmd.AddCommand(statusCmd)
}
