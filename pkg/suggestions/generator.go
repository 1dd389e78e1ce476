// Package suggestions turns detected issues into clarifying questions for
// the requirement author.
package suggestions

import (
	"fmt"
	"strings"

	"github.com/helmcode/reqcheck/pkg/model"
)

// Generate returns one question per distinct issue content, in issue order,
// without duplicates.
func Generate(issues []model.Issue) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, issue := range issues {
		q := Question(issue)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}

// Grouped holds questions split by issue kind.
type Grouped struct {
	Ambiguity   []string `json:"ambiguity" yaml:"ambiguity"`
	Assumptions []string `json:"assumptions" yaml:"assumptions"`
}

// GenerateGrouped is Generate with the questions split by issue kind. Each
// group is deduplicated on its own.
func GenerateGrouped(issues []model.Issue) Grouped {
	var amb, asm []model.Issue
	for _, issue := range issues {
		switch issue.(type) {
		case *model.AmbiguityIssue:
			amb = append(amb, issue)
		case *model.AssumptionIssue:
			asm = append(asm, issue)
		}
	}
	return Grouped{Ambiguity: Generate(amb), Assumptions: Generate(asm)}
}

// Question returns the clarifying question for a single issue.
func Question(issue model.Issue) string {
	switch v := issue.(type) {
	case *model.AmbiguityIssue:
		return ambiguityQuestion(v)
	case *model.AssumptionIssue:
		return assumptionQuestion(v)
	}
	return ""
}

func ambiguityQuestion(issue *model.AmbiguityIssue) string {
	if set, ok := ambiguityTemplates[issue.Type]; ok {
		if q, ok := set.lookup(strings.ToLower(issue.MatchedText)); ok {
			return q
		}
		if set.fallback != "" {
			return set.fallback
		}
	}
	return fmt.Sprintf("What specific criteria define '%s'?", issue.MatchedText)
}

func assumptionQuestion(issue *model.AssumptionIssue) string {
	set, ok := assumptionTemplates[issue.Category]
	if !ok {
		return fmt.Sprintf("What specific %s requirements are needed?", strings.ToLower(string(issue.Category)))
	}

	if key, ok := keyFromDescription(issue.AssumptionDescription); ok {
		if q, ok := set.lookup(key); ok {
			return q
		}
	}

	matched := strings.ToLower(issue.MatchedText)
	for _, t := range set.entries {
		if strings.Contains(matched, strings.ToLower(t.key)) {
			return t.question
		}
	}

	if set.fallback != "" {
		return set.fallback
	}
	return fmt.Sprintf("What specific %s requirements are needed?", strings.ToLower(string(issue.Category)))
}

func keyFromDescription(description string) (string, bool) {
	lower := strings.ToLower(description)
	for _, m := range descriptionKeys {
		if strings.Contains(lower, m.phrase) {
			return m.key, true
		}
	}
	return "", false
}
