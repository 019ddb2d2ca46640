package expense

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
	"fjacquet/expense-cli/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <description>",
	Short: "Suggest a category for a description",
	Long: `Suggest a category using the keyword rules, or the Gemini API when
suggest.enabled is set and GEMINI_API_KEY is available.`,
	Args: cobra.MinimumNArgs(1),
	Run:  suggestFunc,
}

func suggestFunc(cmd *cobra.Command, args []string) {
	description := strings.Join(args, " ")

	rules, err := suggest.LoadRules(root.Cfg.Suggest.RulesFile)
	if err != nil {
		root.Log.Fatalf("Error loading suggestion rules: %v", err)
	}
	keyword := suggest.NewKeyword(rules)

	if root.Cfg.Suggest.Enabled && root.Cfg.Suggest.APIKey != "" {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		gemini, err := suggest.NewGemini(ctx, root.Cfg.Suggest.APIKey, root.Cfg.Suggest.Model, keyword.CategoryNames())
		if err != nil {
			root.Log.Fatalf("Error creating Gemini suggester: %v", err)
		}
		defer func() {
			if err := gemini.Close(); err != nil {
				root.Log.Warnf("Failed to close Gemini client: %v", err)
			}
		}()

		category, err := gemini.Suggest(ctx, description)
		if err != nil {
			root.Log.Warnf("Gemini suggestion failed, falling back to keyword rules: %v", err)
		} else {
			fmt.Println(category)
			return
		}
	}

	fmt.Println(keyword.Suggest(description))
}
