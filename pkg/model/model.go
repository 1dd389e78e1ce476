package model

import (
	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/nlp"
)

// ReadinessLevel classifies a readiness score.
type ReadinessLevel string

const (
	Ready              ReadinessLevel = "Ready"
	NeedsClarification ReadinessLevel = "Needs clarification"
	HighRisk           ReadinessLevel = "High risk for automation"
)

type AnalysisResult struct {
	AmbiguityScore  float64        `json:"ambiguity_score" yaml:"ambiguity_score"`
	AssumptionScore float64        `json:"assumption_score" yaml:"assumption_score"`
	ReadinessScore  float64        `json:"readiness_score" yaml:"readiness_score"`
	ReadinessLevel  ReadinessLevel `json:"readiness_level" yaml:"readiness_level"`
	Issues          IssueList      `json:"issues" yaml:"issues"`
	TotalIssues     int            `json:"total_issues" yaml:"total_issues"`
	Suggestions     []string       `json:"suggestions" yaml:"suggestions"`
}

// Breakdown explains how the scores of one analysis were reached.
type Breakdown struct {
	Text        string              `json:"text" yaml:"text"`
	Ambiguity   AmbiguityBreakdown  `json:"ambiguity" yaml:"ambiguity"`
	Assumptions AssumptionBreakdown `json:"assumptions" yaml:"assumptions"`
	Readiness   ReadinessBreakdown  `json:"readiness" yaml:"readiness"`
}

type AmbiguityBreakdown struct {
	Score      float64         `json:"score" yaml:"score"`
	IssueCount int             `json:"issue_count" yaml:"issue_count"`
	Issues     []AmbiguityType `json:"issues" yaml:"issues"`
}

type AssumptionBreakdown struct {
	Score      float64            `json:"score" yaml:"score"`
	IssueCount int                `json:"issue_count" yaml:"issue_count"`
	Categories []catalog.Category `json:"categories" yaml:"categories"`
}

type ReadinessBreakdown struct {
	Score   float64        `json:"score" yaml:"score"`
	Level   ReadinessLevel `json:"level" yaml:"level"`
	Formula string         `json:"formula" yaml:"formula"`
}

// Preprocessing describes how the text was tokenized.
type Preprocessing struct {
	CleanedText string        `json:"cleaned_text" yaml:"cleaned_text"`
	Sentences   []string      `json:"sentences" yaml:"sentences"`
	TokenCount  int           `json:"token_count" yaml:"token_count"`
	WordCount   int           `json:"word_count" yaml:"word_count"`
	Entities    []nlp.Entity  `json:"entities" yaml:"entities"`
	Annotator   string        `json:"annotator" yaml:"annotator"`
	Stats       nlp.TextStats `json:"stats" yaml:"stats"`
}

// DetailedResult is an AnalysisResult with preprocessing details and a
// score breakdown.
type DetailedResult struct {
	AnalysisResult `yaml:",inline"`
	Preprocessing  Preprocessing `json:"preprocessing" yaml:"preprocessing"`
	Breakdown      Breakdown     `json:"breakdown" yaml:"breakdown"`
}

// BatchItem is the outcome for one text of a batch. Exactly one of Result
// and Error is set.
type BatchItem struct {
	Index  int             `json:"index" yaml:"index"`
	Result *AnalysisResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the item carries an error marker.
func (b BatchItem) Failed() bool {
	return b.Result == nil
}

// Generated is text a language model produced for an analyzed requirement.
type Generated struct {
	Provider string          `json:"provider" yaml:"provider"`
	Output   string          `json:"output" yaml:"output"`
	Analysis *AnalysisResult `json:"analysis" yaml:"analysis"`
}
