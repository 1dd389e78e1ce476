package metrics

import (
	"math"

	"github.com/helmcode/reqcheck/pkg/model"
)

// Summarize aggregates batch items. Failed items count towards Total and
// Failed only.
func Summarize(items []model.BatchItem) BatchSummary {
	s := BatchSummary{
		Total: len(items),
		Levels: map[model.ReadinessLevel]int{
			model.Ready:              0,
			model.NeedsClarification: 0,
			model.HighRisk:           0,
		},
		IssueTypes: make(map[string]int),
	}

	var amb, asm, ready []float64
	for _, item := range items {
		if item.Failed() {
			s.Failed++
			continue
		}
		r := item.Result
		s.Analyzed++
		s.Levels[r.ReadinessLevel]++
		s.TotalIssues += r.TotalIssues
		for _, issue := range r.Issues {
			s.IssueTypes[issueType(issue)]++
		}
		amb = append(amb, r.AmbiguityScore)
		asm = append(asm, r.AssumptionScore)
		ready = append(ready, r.ReadinessScore)
	}

	s.Ambiguity = calculateStats(amb)
	s.Assumption = calculateStats(asm)
	s.Readiness = calculateStats(ready)
	return s
}

func issueType(issue model.Issue) string {
	switch v := issue.(type) {
	case *model.AmbiguityIssue:
		return string(v.Type)
	case *model.AssumptionIssue:
		return string(v.Type)
	}
	return string(issue.IssueKind())
}

// calculateStats returns the average, peak and minimum of values, with the
// average rounded to one decimal.
func calculateStats(values []float64) ScoreSummary {
	if len(values) == 0 {
		return ScoreSummary{}
	}

	sum := 0.0
	peak, lowest := values[0], values[0]
	for _, v := range values {
		sum += v
		if v > peak {
			peak = v
		}
		if v < lowest {
			lowest = v
		}
	}

	return ScoreSummary{
		Average: math.Round(sum/float64(len(values))*10) / 10,
		Peak:    peak,
		Minimum: lowest,
	}
}
