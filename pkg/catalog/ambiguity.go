// Package catalog holds the fixed lookup tables the detectors run against.
//
// Every table is built once at package init and never mutated afterwards, so
// the catalog can be shared freely between goroutines.
package catalog

import (
	"regexp"
	"strings"
)

// TermSet is an immutable set of lower-cased terms. Entries may be single
// words ("should") or multi-word phrases ("if possible").
type TermSet struct {
	terms   map[string]struct{}
	longest int
}

func newTermSet(terms ...string) TermSet {
	s := TermSet{terms: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := s.terms[t]; dup {
			continue
		}
		s.terms[t] = struct{}{}
		s.longest = max(s.longest, len(strings.Fields(t)))
	}
	return s
}

// Contains reports whether term (compared lower-cased) is in the set.
func (s TermSet) Contains(term string) bool {
	_, ok := s.terms[strings.ToLower(term)]
	return ok
}

// MaxWords returns the word count of the longest entry.
func (s TermSet) MaxWords() int {
	return s.longest
}

// Len returns the number of entries.
func (s TermSet) Len() int {
	return len(s.terms)
}

// ContainsAnySubstring reports whether any entry occurs as a substring of
// text. text is expected to be lower-cased already.
func (s TermSet) ContainsAnySubstring(text string) bool {
	for t := range s.terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

var (
	// SubjectiveTerms are vague quality adjectives that need quantification.
	SubjectiveTerms = newTermSet(
		"fast", "slow", "quick", "rapid", "secure", "safe", "scalable",
		"optimal", "efficient", "user-friendly", "intuitive", "robust",
		"reliable", "stable", "flexible", "portable", "compatible",
		"accessible", "responsive", "smooth", "seamless", "clean",
		"proper", "correct", "appropriate", "adequate", "sufficient",
	)

	// WeakModalityTerms mark a requirement as optional or conditional.
	WeakModalityTerms = newTermSet(
		"should", "could", "might", "may", "can", "if possible",
		"as needed", "when necessary", "ideally", "preferably",
	)

	// UndefinedReferences are pronouns and generic nouns that usually lack
	// an antecedent in a single requirement statement.
	UndefinedReferences = newTermSet(
		"it", "this", "that", "these", "those", "the system",
		"the component", "the application", "the user",
	)
)

// nonTestableSources are matched against the whole lower-cased text.
var nonTestableSources = []string{
	`handle.*properly`,
	`work.*correctly`,
	`function.*properly`,
	`behave.*correctly`,
	`perform.*properly`,
	`process.*correctly`,
}

// NonTestablePatterns are the compiled, case-insensitive forms of the
// non-testable statement patterns, in evaluation order.
var NonTestablePatterns = compileAll(nonTestableSources)

func compileAll(sources []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(sources))
	for i, src := range sources {
		out[i] = regexp.MustCompile(`(?i)` + src)
	}
	return out
}
