// Package category handles the category registry commands
package category

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
)

// Cmd represents the category command
var Cmd = &cobra.Command{
	Use:   "category",
	Short: "Manage expense categories",
}

var addDescription string

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cat, err := root.OpenLedger().AddCategory(args[0], addDescription)
		if err != nil {
			root.Log.Fatalf("Error adding category: %v", err)
		}
		fmt.Printf("Added category %q\n", cat.Name)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Run: func(cmd *cobra.Command, args []string) {
		categories, err := root.OpenLedger().ListCategories()
		if err != nil {
			root.Log.Fatalf("Error listing categories: %v", err)
		}
		for _, cat := range categories {
			if cat.Description != "" {
				fmt.Printf("%s - %s\n", cat.Name, cat.Description)
			} else {
				fmt.Println(cat.Name)
			}
		}
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a category that no expense uses",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := root.OpenLedger().DeleteCategory(args[0]); err != nil {
			root.Log.Fatalf("Error deleting category: %v", err)
		}
		fmt.Printf("Deleted category %q\n", args[0])
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Category description")
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deleteCmd)
}
