package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"fjacquet/expense-cli/internal/models"
)

// Gemini suggests categories by asking the Gemini API to pick one of the
// registered category names.
type Gemini struct {
	client     *genai.Client
	model      *genai.GenerativeModel
	categories []string
}

// NewGemini creates a Gemini-backed suggester for the given category
// names.
func NewGemini(ctx context.Context, apiKey, model string, categories []string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		client:     client,
		model:      client.GenerativeModel(model),
		categories: categories,
	}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Suggest asks the model to classify the description into one of the
// registered categories.
func (g *Gemini) Suggest(ctx context.Context, description string) (string, error) {
	prompt := fmt.Sprintf(`Categorize the following expense:
Description: %s

Please assign this expense to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		description,
		strings.Join(g.categories, ", "))

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := extractCategory(responseText, g.categories)

	log.WithFields(logrus.Fields{
		"description": description,
		"category":    category,
	}).Debug("Gemini classified expense")
	return category, nil
}

// extractCategory parses the model response. Unstructured answers fall
// back to scanning for any known category name; the sentinel category is
// the last resort.
func extractCategory(response string, known []string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			name := strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
			return strings.ToLower(name)
		}
	}

	lower := strings.ToLower(response)
	for _, name := range known {
		if strings.Contains(lower, strings.ToLower(name)) {
			return strings.ToLower(name)
		}
	}
	return models.SentinelCategory
}
