// Package report handles the monthly report and comparison commands
package report

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
	"fjacquet/expense-cli/internal/analytics"
	"fjacquet/expense-cli/internal/models"
	"fjacquet/expense-cli/internal/report"
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Monthly reports and month-to-month comparisons",
}

var monthlyCmd = &cobra.Command{
	Use:   "monthly <month>",
	Short: "Show the report for a month of the current year",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		month := parseMonth(args[0])
		store := readStore()
		fmt.Print(report.Render(report.BuildMonthly(store, month, root.Now()), root.Cfg.Currency.Base))
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <month1> <month2>",
	Short: "Compare two months of the current year",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		month1 := parseMonth(args[0])
		month2 := parseMonth(args[1])
		store := readStore()
		fmt.Print(report.RenderComparison(analytics.Compare(store, month1, month2, root.Now()), root.Cfg.Currency.Base))
	},
}

func readStore() *models.Store {
	l := root.OpenLedger()
	if err := l.Initialize(); err != nil {
		root.Log.Fatalf("Error initializing ledger: %v", err)
	}
	store, err := l.Read()
	if err != nil {
		root.Log.Fatalf("Error reading ledger: %v", err)
	}
	return store
}

func parseMonth(arg string) int {
	month, err := strconv.Atoi(arg)
	if err != nil || month < 1 || month > 12 {
		root.Log.Fatalf("Invalid month %q: must be 1-12", arg)
	}
	return month
}

func init() {
	Cmd.AddCommand(monthlyCmd)
	Cmd.AddCommand(compareCmd)
}
