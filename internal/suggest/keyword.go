// Package suggest proposes a category for an expense description, either
// from keyword rules or from the Gemini API.
package suggest

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"fjacquet/expense-cli/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Rule maps a category to the keywords that select it.
type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// RulesConfig is the structure of the keyword rules YAML file.
type RulesConfig struct {
	Categories []Rule `yaml:"categories"`
}

// DefaultRules returns the built-in keyword rules covering the seeded
// categories.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "food", Keywords: []string{"restaurant", "lunch", "dinner", "grocery", "cafe", "coffee"}},
		{Name: "transport", Keywords: []string{"bus", "train", "taxi", "fuel", "parking", "ticket"}},
		{Name: "housing", Keywords: []string{"rent", "mortgage", "repair"}},
		{Name: "utilities", Keywords: []string{"electric", "water", "internet", "phone", "bill"}},
		{Name: "entertainment", Keywords: []string{"cinema", "movie", "concert", "game", "streaming"}},
		{Name: "health", Keywords: []string{"pharmacy", "doctor", "dentist", "gym"}},
		{Name: "shopping", Keywords: []string{"amazon", "store", "clothes", "shoes"}},
	}
}

// LoadRules reads keyword rules from a YAML file. An empty path selects
// the built-in defaults.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read rules file %s: %w", path, err)
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse rules file %s: %w", path, err)
	}
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("rules file %s defines no categories", path)
	}

	return cfg.Categories, nil
}

// Keyword is a rule-based suggester. It holds no state beyond its rules
// and is safe for concurrent use.
type Keyword struct {
	rules []Rule
}

// NewKeyword builds a keyword suggester from the given rules.
func NewKeyword(rules []Rule) *Keyword {
	return &Keyword{rules: rules}
}

// Suggest returns the first rule category whose keyword appears in the
// description. Rules are checked in order, keywords case-insensitively.
// The sentinel category is returned when nothing matches.
func (k *Keyword) Suggest(description string) string {
	haystack := strings.ToLower(description)
	for _, rule := range k.rules {
		for _, keyword := range rule.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(haystack, strings.ToLower(keyword)) {
				log.WithFields(logrus.Fields{
					"category": rule.Name,
					"keyword":  keyword,
				}).Debug("Keyword rule matched")
				return rule.Name
			}
		}
	}
	return models.SentinelCategory
}

// CategoryNames returns the rule category names, sorted.
func (k *Keyword) CategoryNames() []string {
	names := make([]string, 0, len(k.rules))
	for _, rule := range k.rules {
		names = append(names, rule.Name)
	}
	sort.Strings(names)
	return names
}
