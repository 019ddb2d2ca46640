package expense

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
	"fjacquet/expense-cli/internal/currencyutils"
	"fjacquet/expense-cli/internal/dateutils"
	"fjacquet/expense-cli/internal/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	Run:   listFunc,
}

func listFunc(cmd *cobra.Command, args []string) {
	expenses, err := root.OpenLedger().ListExpenses()
	if err != nil {
		root.Log.Fatalf("Error listing expenses: %v", err)
	}

	if len(expenses) == 0 {
		fmt.Println("No expenses recorded")
		return
	}

	total := models.ZeroMoney(root.Cfg.Currency.Base)
	for _, e := range expenses {
		line := fmt.Sprintf("#%d  %s  %s %s  %s  %s",
			e.ID,
			dateutils.ToISODate(e.Date),
			currencyutils.FormatAmount(e.Amount), root.Cfg.Currency.Base,
			e.Category,
			e.Description)
		if len(e.Tags) > 0 {
			line += "  [" + strings.Join(e.Tags, ", ") + "]"
		}
		fmt.Println(line)

		total, err = total.Add(models.NewMoney(e.Amount, root.Cfg.Currency.Base))
		if err != nil {
			root.Log.Fatalf("Error totaling expenses: %v", err)
		}
	}
	fmt.Printf("Total: %s\n", total)
}
