// Package activity handles the GitHub activity viewer command
package activity

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/expense-cli/cmd/root"
	"fjacquet/expense-cli/internal/activity"
	"fjacquet/expense-cli/internal/config"
)

var (
	eventType string
	limit     int
	detailed  bool
	noCache   bool
)

// Cmd represents the activity command
var Cmd = &cobra.Command{
	Use:   "activity <username>",
	Short: "Show recent GitHub activity for a user",
	Long: `Fetch a user's recent public GitHub events. Responses are cached for
five minutes; set GITHUB_TOKEN for a higher API rate limit.`,
	Args: cobra.ExactArgs(1),
	Run:  activityFunc,
}

func init() {
	Cmd.Flags().StringVarP(&eventType, "type", "t", "", "Filter by event type (e.g. PushEvent)")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of events")
	Cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "Show commit messages and titles")
	Cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the response cache")
}

func activityFunc(cmd *cobra.Command, args []string) {
	opts := []activity.ClientOption{}
	if token := config.GetGithubToken(); token != "" {
		opts = append(opts, activity.WithToken(token))
	}
	if !noCache {
		cache, err := activity.NewCache("")
		if err != nil {
			root.Log.Warnf("Cache unavailable: %v", err)
		} else {
			opts = append(opts, activity.WithCache(cache))
		}
	}

	client := activity.NewClient(opts...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	events, err := client.UserEvents(ctx, args[0], activity.FetchOptions{
		EventType: eventType,
		Limit:     limit,
	})
	if err != nil {
		root.Log.Fatalf("Error fetching activity: %v", err)
	}

	for _, line := range activity.FormatEvents(events, detailed) {
		fmt.Println(line)
	}
}
