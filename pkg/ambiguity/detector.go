// Package ambiguity finds vague, optional and untestable wording in a
// requirement and scores how ambiguous it is.
package ambiguity

import (
	"fmt"
	"strings"

	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/model"
	"github.com/helmcode/reqcheck/pkg/nlp"
)

// Detect runs the four ambiguity rules over doc in a fixed order: subjective
// terms, weak modality, undefined references, non-testable statements.
// Issues within a rule follow text order. Duplicates are kept.
func Detect(doc *nlp.Document) []*model.AmbiguityIssue {
	var issues []*model.AmbiguityIssue
	issues = append(issues, matchTerms(doc, catalog.SubjectiveTerms, model.SubjectiveTerm, nil)...)
	issues = append(issues, matchTerms(doc, catalog.WeakModalityTerms, model.WeakModality, nil)...)
	issues = append(issues, matchTerms(doc, catalog.UndefinedReferences, model.UndefinedReference, referenceGate(doc))...)
	issues = append(issues, detectNonTestable(doc.Text)...)
	return issues
}

// DetectText annotates text with a and runs Detect.
func DetectText(a nlp.Annotator, text string) ([]*model.AmbiguityIssue, error) {
	doc, err := a.Annotate(text)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	return Detect(doc), nil
}

// Message returns the message used for an issue of type typ on text.
func Message(typ model.AmbiguityType, text string) string {
	switch typ {
	case model.SubjectiveTerm:
		return fmt.Sprintf("Subjective performance/behavior term: '%s'", text)
	case model.WeakModality:
		return fmt.Sprintf("Optional/weak requirement term: '%s'", text)
	case model.UndefinedReference:
		return fmt.Sprintf("Potentially undefined reference: '%s'", text)
	case model.NonTestableStatement:
		return fmt.Sprintf("Non-testable requirement: '%s'", text)
	}
	return fmt.Sprintf("Ambiguous term: '%s'", text)
}

// gate decides whether a match starting at token i is reported.
type gate func(i int) bool

// referenceGate accepts pronouns and determiner or possessive dependents.
// Without tagging every match is accepted.
func referenceGate(doc *nlp.Document) gate {
	if !doc.Tagged {
		return nil
	}
	return func(i int) bool {
		t := doc.Tokens[i]
		return t.POS == nlp.POSPron || t.Dep == nlp.DepDet || t.Dep == nlp.DepPoss
	}
}

func matchTerms(doc *nlp.Document, terms catalog.TermSet, typ model.AmbiguityType, accept gate) []*model.AmbiguityIssue {
	var issues []*model.AmbiguityIssue
	tokens := doc.Tokens

	emit := func(first, last int) {
		if accept != nil && !accept(first) {
			return
		}
		start, end := tokens[first].Start, tokens[last].End
		text := spanText(doc, first, last)
		issues = append(issues, model.NewAmbiguityIssue(typ, text, Message(typ, text)).WithSpan(start, end))
	}

	// windows grow from one token up to the longest entry in terms
	for i := range tokens {
		window := ""
		for last := i; last < len(tokens) && last-i < terms.MaxWords(); last++ {
			if last > i {
				window += " "
			}
			window += tokens[last].Lower()
			if terms.Contains(window) {
				emit(i, last)
			}
		}
	}
	return issues
}

// spanText returns the lower-cased matched words separated by single spaces.
func spanText(doc *nlp.Document, first, last int) string {
	if first == last {
		return doc.Tokens[first].Lower()
	}
	words := make([]string, 0, last-first+1)
	for _, t := range doc.Tokens[first : last+1] {
		words = append(words, t.Lower())
	}
	return strings.Join(words, " ")
}

func detectNonTestable(text string) []*model.AmbiguityIssue {
	var issues []*model.AmbiguityIssue
	for _, re := range catalog.NonTestablePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matched := strings.ToLower(text[loc[0]:loc[1]])
			issues = append(issues, model.NewAmbiguityIssue(
				model.NonTestableStatement, matched, Message(model.NonTestableStatement, matched),
			).WithSpan(loc[0], loc[1]))
		}
	}
	return issues
}
