// Package assumption finds the implicit preconditions a requirement relies
// on (environment, data, system state) and scores how many it leaves unstated.
package assumption

import (
	"fmt"
	"strings"

	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/model"
	"github.com/helmcode/reqcheck/pkg/nlp"
)

// Fixed texts of the environment and context rules.
const (
	uiInteractionText    = "UI interaction"
	uiInteractionMessage = "UI interaction without environment specification"
	uiInteractionDesc    = "Browser, device, or platform is specified"

	userActionText    = "User-specific action"
	userActionMessage = "User-specific action without user context"
	userActionDesc    = "User is logged in and authenticated"

	dataOperationText    = "Data operation"
	dataOperationMessage = "Data operation without data context"
	dataOperationDesc    = "Required data exists in the system"
)

// Detect runs the action, environment and context rules over doc, in that
// order.
func Detect(doc *nlp.Document) []*model.AssumptionIssue {
	lower := doc.Lower()

	var issues []*model.AssumptionIssue
	issues = append(issues, detectActions(lower, inflectionText(doc))...)
	issues = append(issues, detectEnvironment(lower)...)
	issues = append(issues, detectContext(lower)...)
	return issues
}

// DetectText annotates text with a and runs Detect.
func DetectText(a nlp.Annotator, text string) ([]*model.AssumptionIssue, error) {
	doc, err := a.Annotate(text)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	return Detect(doc), nil
}

// inflectionText joins the lower-cased tokens, replacing plural and third
// person forms by their lemma so that "logs in" reads "log in". Past forms are
// kept: "logged in" states a precondition rather than an action.
func inflectionText(doc *nlp.Document) string {
	words := make([]string, len(doc.Tokens))
	for i, t := range doc.Tokens {
		w := t.Lower()
		if strings.HasSuffix(w, "s") && t.Lemma != "" {
			w = t.Lemma
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

// detectActions emits one issue per implied assumption of every action that
// occurs in the text or its normalized form, unless the text states it.
func detectActions(lower, normalized string) []*model.AssumptionIssue {
	var issues []*model.AssumptionIssue
	for _, action := range catalog.Actions {
		if !strings.Contains(lower, action.Phrase) && !strings.Contains(normalized, action.Phrase) {
			continue
		}
		for _, key := range action.Assumptions {
			if catalog.IsExplicit(lower, key) {
				continue
			}
			issues = append(issues, model.NewAssumptionIssue(
				model.ActionAssumption,
				catalog.CategoryOf(key),
				action.Phrase,
				fmt.Sprintf("Action '%s' implies assumption", action.Phrase),
				catalog.DescriptionOf(key),
			))
		}
	}
	return issues
}

func detectEnvironment(lower string) []*model.AssumptionIssue {
	if !catalog.UIActions.ContainsAnySubstring(lower) || catalog.EnvironmentIndicators.ContainsAnySubstring(lower) {
		return nil
	}
	return []*model.AssumptionIssue{
		model.NewAssumptionIssue(model.EnvironmentAssumption, catalog.CategoryEnvironment,
			uiInteractionText, uiInteractionMessage, uiInteractionDesc),
	}
}

func detectContext(lower string) []*model.AssumptionIssue {
	var issues []*model.AssumptionIssue
	if catalog.UserCentricTerms.ContainsAnySubstring(lower) && !catalog.UserContextIndicators.ContainsAnySubstring(lower) {
		issues = append(issues, model.NewAssumptionIssue(model.ContextAssumption, catalog.CategoryState,
			userActionText, userActionMessage, userActionDesc))
	}
	if catalog.DataActions.ContainsAnySubstring(lower) && !catalog.DataContextIndicators.ContainsAnySubstring(lower) {
		issues = append(issues, model.NewAssumptionIssue(model.ContextAssumption, catalog.CategoryData,
			dataOperationText, dataOperationMessage, dataOperationDesc))
	}
	return issues
}
