// Package task handles the bundled task tracker commands
package task

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
	"fjacquet/expense-cli/internal/taskstore"
)

// Cmd represents the task command
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Track tasks alongside your expenses",
}

var (
	addDescription string
	addPriority    string

	updateTitle       string
	updateDescription string
	updatePriority    string

	listStatus   string
	listPriority string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		task, err := root.OpenTaskStore().Add(args[0], addDescription, addPriority)
		if err != nil {
			root.Log.Fatalf("Error adding task: %v", err)
		}
		fmt.Printf("Added task #%d with %s priority\n", task.ID, task.Priority)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		var fields taskstore.UpdateFields
		if cmd.Flags().Changed("title") {
			fields.Title = &updateTitle
		}
		if cmd.Flags().Changed("description") {
			fields.Description = &updateDescription
		}
		if cmd.Flags().Changed("priority") {
			fields.Priority = &updatePriority
		}

		task, err := root.OpenTaskStore().Update(id, fields)
		if err != nil {
			root.Log.Fatalf("Error updating task: %v", err)
		}
		fmt.Printf("Updated task #%d\n", task.ID)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change a task status (TODO, IN_PROGRESS, DONE)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		task, err := root.OpenTaskStore().SetStatus(id, args[1])
		if err != nil {
			root.Log.Fatalf("Error changing task status: %v", err)
		}
		fmt.Printf("Task #%d status changed to %s\n", task.ID, task.Status)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		task, err := root.OpenTaskStore().Delete(id)
		if err != nil {
			root.Log.Fatalf("Error deleting task: %v", err)
		}
		fmt.Printf("Deleted task #%d: %s\n", task.ID, task.Title)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Run: func(cmd *cobra.Command, args []string) {
		tasks, err := root.OpenTaskStore().List(taskstore.ListFilter{
			Status:   listStatus,
			Priority: listPriority,
		})
		if err != nil {
			root.Log.Fatalf("Error listing tasks: %v", err)
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks found")
			return
		}

		for _, task := range tasks {
			fmt.Printf("#%d [%s] %s %s\n", task.ID, task.Priority, task.Status, task.Title)
			if task.Description != "" {
				fmt.Printf("    %s\n", task.Description)
			}
			if task.CompletedAt != nil {
				fmt.Printf("    Completed: %s\n", task.CompletedAt.Format("2006-01-02 15:04:05"))
			}
		}
	},
}

func parseID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		root.Log.Fatalf("Invalid task ID %q", arg)
	}
	return id
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Task priority (P1, P2, P3)")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "New description")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "New priority")

	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(statusCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(listCmd)
}
