// Package export handles the CSV export command
package export

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
	"fjacquet/expense-cli/internal/export"
)

var (
	exportMonth  int
	exportOutput string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses to CSV",
	Long: `Export expenses to the standardized CSV document with amounts in the
base and secondary currencies. An optional month filter restricts the
export to one month of the current year.`,
	Run: exportFunc,
}

func init() {
	Cmd.Flags().IntVarP(&exportMonth, "month", "m", 0, "Export one month of the current year (1-12)")
	Cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output CSV file")
}

func exportFunc(cmd *cobra.Command, args []string) {
	if exportMonth != 0 && (exportMonth < 1 || exportMonth > 12) {
		root.Log.Fatalf("Invalid month %d: must be 1-12", exportMonth)
	}

	l := root.OpenLedger()
	if err := l.Initialize(); err != nil {
		root.Log.Fatalf("Error initializing ledger: %v", err)
	}
	store, err := l.Read()
	if err != nil {
		root.Log.Fatalf("Error reading ledger: %v", err)
	}

	opts := export.Options{
		Month:             exportMonth,
		OutputPath:        exportOutput,
		BaseCurrency:      root.Cfg.Currency.Base,
		SecondaryCurrency: root.Cfg.Currency.Secondary,
		Rate:              decimal.NewFromFloat(root.Cfg.Currency.Rate),
		Delimiter:         []rune(root.Cfg.CSV.Delimiter)[0],
	}

	path, err := export.Expenses(store, opts, root.Now())
	if errors.Is(err, export.ErrNothingToExport) {
		fmt.Println("Nothing to export")
		return
	}
	if err != nil {
		root.Log.Fatalf("Error exporting expenses: %v", err)
	}
	fmt.Printf("Exported expenses to %s\n", path)
}
