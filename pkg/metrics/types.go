// Package metrics summarizes the scores of a batch analysis.
package metrics

import "github.com/helmcode/reqcheck/pkg/model"

// ScoreSummary holds basic statistics for one score across a batch.
type ScoreSummary struct {
	Average float64 `json:"average" yaml:"average"`
	Peak    float64 `json:"peak" yaml:"peak"`
	Minimum float64 `json:"minimum" yaml:"minimum"`
}

// BatchSummary describes a batch of analysis results.
type BatchSummary struct {
	Total       int                          `json:"total" yaml:"total"`
	Analyzed    int                          `json:"analyzed" yaml:"analyzed"`
	Failed      int                          `json:"failed" yaml:"failed"`
	Ambiguity   ScoreSummary                 `json:"ambiguity_score" yaml:"ambiguity_score"`
	Assumption  ScoreSummary                 `json:"assumption_score" yaml:"assumption_score"`
	Readiness   ScoreSummary                 `json:"readiness_score" yaml:"readiness_score"`
	Levels      map[model.ReadinessLevel]int `json:"readiness_levels" yaml:"readiness_levels"`
	TotalIssues int                          `json:"total_issues" yaml:"total_issues"`
	IssueTypes  map[string]int               `json:"issue_types" yaml:"issue_types"`
}

// ReadyRatio is the share of analyzed items classified as Ready.
func (s BatchSummary) ReadyRatio() float64 {
	if s.Analyzed == 0 {
		return 0
	}
	return float64(s.Levels[model.Ready]) / float64(s.Analyzed)
}
