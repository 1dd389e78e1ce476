package catalog

import (
	"errors"
	"fmt"
	"regexp"
)

// Validate checks the tables for internal consistency: every assumption
// implied by an action must have a description and a category, and every
// non-testable pattern must compile.
func Validate() error {
	var errs []error

	for _, a := range Actions {
		if a.Phrase == "" {
			errs = append(errs, errors.New("action with empty phrase"))
		}
		if len(a.Assumptions) == 0 {
			errs = append(errs, fmt.Errorf("action %q implies no assumptions", a.Phrase))
		}
		for _, key := range a.Assumptions {
			if _, ok := AssumptionDescriptions[key]; !ok {
				errs = append(errs, fmt.Errorf("action %q: undefined assumption %q", a.Phrase, key))
			}
			if _, ok := AssumptionCategories[key]; !ok {
				errs = append(errs, fmt.Errorf("action %q: uncategorized assumption %q", a.Phrase, key))
			}
		}
	}

	for key := range ExplicitIndicators {
		if _, ok := AssumptionDescriptions[key]; !ok {
			errs = append(errs, fmt.Errorf("explicit indicators for undefined assumption %q", key))
		}
	}

	for _, src := range nonTestableSources {
		if _, err := regexp.Compile(src); err != nil {
			errs = append(errs, fmt.Errorf("pattern %q: %w", src, err))
		}
	}

	return errors.Join(errs...)
}

// Stats summarizes the catalog sizes, for the patterns command.
type Stats struct {
	SubjectiveTerms     int `json:"subjective_terms" yaml:"subjective_terms"`
	WeakModalityTerms   int `json:"weak_modality_terms" yaml:"weak_modality_terms"`
	UndefinedReferences int `json:"undefined_references" yaml:"undefined_references"`
	NonTestablePatterns int `json:"non_testable_patterns" yaml:"non_testable_patterns"`
	Actions             int `json:"actions" yaml:"actions"`
	Assumptions         int `json:"assumptions" yaml:"assumptions"`
	EnvironmentTerms    int `json:"environment_indicators" yaml:"environment_indicators"`
}

// Summary returns the current table sizes.
func Summary() Stats {
	return Stats{
		SubjectiveTerms:     SubjectiveTerms.Len(),
		WeakModalityTerms:   WeakModalityTerms.Len(),
		UndefinedReferences: UndefinedReferences.Len(),
		NonTestablePatterns: len(NonTestablePatterns),
		Actions:             len(Actions),
		Assumptions:         len(AssumptionDescriptions),
		EnvironmentTerms:    EnvironmentIndicators.Len(),
	}
}
