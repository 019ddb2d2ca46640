package activity

import (
	"fmt"
	"strings"
)

// FormatEvents renders events one line each. Detailed mode adds commit
// messages and issue or pull request titles on indented lines.
func FormatEvents(events []Event, detailed bool) []string {
	if len(events) == 0 {
		return []string{"No activities found"}
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, formatEvent(e, detailed))
	}
	return lines
}

func formatEvent(e Event, detailed bool) string {
	prefix := fmt.Sprintf("[%s] ", e.CreatedAt.Format("2006-01-02 15:04:05"))

	var message string
	switch e.Type {
	case "PushEvent":
		n := len(e.Payload.Commits)
		plural := ""
		if n != 1 {
			plural = "s"
		}
		message = fmt.Sprintf("Pushed %d commit%s to %s", n, plural, e.Repo.Name)
		if detailed && n > 0 {
			messages := make([]string, 0, n)
			for _, c := range e.Payload.Commits {
				messages = append(messages, c.Message)
			}
			message += "\n  Commits: " + strings.Join(messages, ", ")
		}
	case "CreateEvent":
		refType := e.Payload.RefType
		if refType == "" {
			refType = "repository"
		}
		message = fmt.Sprintf("Created %s in %s", refType, e.Repo.Name)
	case "WatchEvent":
		message = fmt.Sprintf("Starred %s", e.Repo.Name)
	case "ForkEvent":
		message = fmt.Sprintf("Forked %s", e.Repo.Name)
	case "IssuesEvent":
		message = fmt.Sprintf("%s issue #%d in %s",
			capitalize(e.Payload.Action), e.Payload.Issue.Number, e.Repo.Name)
		if detailed && e.Payload.Issue.Title != "" {
			message += "\n  Title: " + e.Payload.Issue.Title
		}
	case "PullRequestEvent":
		message = fmt.Sprintf("%s pull request #%d in %s",
			capitalize(e.Payload.Action), e.Payload.PullRequest.Number, e.Repo.Name)
		if detailed && e.Payload.PullRequest.Title != "" {
			message += "\n  Title: " + e.Payload.PullRequest.Title
		}
	default:
		message = fmt.Sprintf("%s on %s", e.Type, e.Repo.Name)
	}

	return prefix + message
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
