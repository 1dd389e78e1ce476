package model

import (
	"encoding/json"
	"fmt"

	"github.com/helmcode/reqcheck/pkg/catalog"
)

// Kind discriminates the Issue variants on the wire.
type Kind string

const (
	KindAmbiguity  Kind = "ambiguity"
	KindAssumption Kind = "assumption"
)

// AmbiguityType is the rule that produced an AmbiguityIssue.
type AmbiguityType string

const (
	SubjectiveTerm       AmbiguityType = "Subjective term"
	WeakModality         AmbiguityType = "Weak modality"
	UndefinedReference   AmbiguityType = "Undefined reference"
	NonTestableStatement AmbiguityType = "Non-testable statement"
)

// AssumptionType is the rule that produced an AssumptionIssue.
type AssumptionType string

const (
	ActionAssumption      AssumptionType = "Action assumption"
	EnvironmentAssumption AssumptionType = "Environment assumption"
	ContextAssumption     AssumptionType = "Context assumption"
)

// Issue is either an *AmbiguityIssue or an *AssumptionIssue.
type Issue interface {
	IssueKind() Kind
	// Matched returns the text that triggered the issue.
	Matched() string
	// Explain returns the human-readable message.
	Explain() string
	sealed()
}

// AmbiguityIssue is a vague or untestable phrase.
type AmbiguityIssue struct {
	Kind        Kind          `json:"kind" yaml:"kind"`
	Type        AmbiguityType `json:"type" yaml:"type"`
	MatchedText string        `json:"text" yaml:"text"`
	Message     string        `json:"message" yaml:"message"`
	StartChar   *int          `json:"start_char,omitempty" yaml:"start_char,omitempty"`
	EndChar     *int          `json:"end_char,omitempty" yaml:"end_char,omitempty"`
}

// NewAmbiguityIssue builds an AmbiguityIssue without a span.
func NewAmbiguityIssue(typ AmbiguityType, text, message string) *AmbiguityIssue {
	return &AmbiguityIssue{
		Kind:        KindAmbiguity,
		Type:        typ,
		MatchedText: text,
		Message:     message,
	}
}

// WithSpan sets the byte range of the match and returns i.
func (i *AmbiguityIssue) WithSpan(start, end int) *AmbiguityIssue {
	i.StartChar = &start
	i.EndChar = &end
	return i
}

// Span returns the byte range of the match, if known.
func (i *AmbiguityIssue) Span() (start, end int, ok bool) {
	if i.StartChar == nil || i.EndChar == nil {
		return 0, 0, false
	}
	return *i.StartChar, *i.EndChar, true
}

func (i *AmbiguityIssue) IssueKind() Kind { return KindAmbiguity }
func (i *AmbiguityIssue) Matched() string { return i.MatchedText }
func (i *AmbiguityIssue) Explain() string { return i.Message }
func (i *AmbiguityIssue) sealed()         {}

// AssumptionIssue is an implicit precondition the text relies on.
type AssumptionIssue struct {
	Kind                  Kind             `json:"kind" yaml:"kind"`
	Type                  AssumptionType   `json:"type" yaml:"type"`
	Category              catalog.Category `json:"category" yaml:"category"`
	MatchedText           string           `json:"text" yaml:"text"`
	Message               string           `json:"message" yaml:"message"`
	AssumptionDescription string           `json:"assumption" yaml:"assumption"`
}

// NewAssumptionIssue builds an AssumptionIssue.
func NewAssumptionIssue(typ AssumptionType, category catalog.Category, text, message, description string) *AssumptionIssue {
	return &AssumptionIssue{
		Kind:                  KindAssumption,
		Type:                  typ,
		Category:              category,
		MatchedText:           text,
		Message:               message,
		AssumptionDescription: description,
	}
}

func (i *AssumptionIssue) IssueKind() Kind { return KindAssumption }
func (i *AssumptionIssue) Matched() string { return i.MatchedText }
func (i *AssumptionIssue) Explain() string { return i.Message }
func (i *AssumptionIssue) sealed()         {}

// IssueList is an ordered list of issues that round-trips through JSON.
type IssueList []Issue

// UnmarshalJSON decodes each element into the variant named by its kind.
func (l *IssueList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(IssueList, 0, len(raw))
	for i, msg := range raw {
		var head struct {
			Kind Kind `json:"kind"`
		}
		if err := json.Unmarshal(msg, &head); err != nil {
			return fmt.Errorf("issue %d: %w", i, err)
		}

		switch head.Kind {
		case KindAmbiguity:
			var issue AmbiguityIssue
			if err := json.Unmarshal(msg, &issue); err != nil {
				return fmt.Errorf("issue %d: %w", i, err)
			}
			out = append(out, &issue)
		case KindAssumption:
			var issue AssumptionIssue
			if err := json.Unmarshal(msg, &issue); err != nil {
				return fmt.Errorf("issue %d: %w", i, err)
			}
			out = append(out, &issue)
		default:
			return fmt.Errorf("issue %d: unknown kind %q", i, head.Kind)
		}
	}
	*l = out
	return nil
}

// Split separates the list into its two variants, preserving order.
func (l IssueList) Split() ([]*AmbiguityIssue, []*AssumptionIssue) {
	var amb []*AmbiguityIssue
	var asm []*AssumptionIssue
	for _, issue := range l {
		switch v := issue.(type) {
		case *AmbiguityIssue:
			amb = append(amb, v)
		case *AssumptionIssue:
			asm = append(asm, v)
		}
	}
	return amb, asm
}

// Merge concatenates ambiguity issues followed by assumption issues.
func Merge(amb []*AmbiguityIssue, asm []*AssumptionIssue) IssueList {
	out := make(IssueList, 0, len(amb)+len(asm))
	for _, i := range amb {
		out = append(out, i)
	}
	for _, i := range asm {
		out = append(out, i)
	}
	return out
}
