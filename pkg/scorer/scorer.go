// Package scorer combines the ambiguity and assumption scores into a
// readiness score and classifies it.
package scorer

import (
	"fmt"
	"math"

	"github.com/helmcode/reqcheck/pkg/ambiguity"
	"github.com/helmcode/reqcheck/pkg/assumption"
	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/model"
)

// Classification thresholds. Each band includes its lower bound.
const (
	ReadyThreshold              = 70.0
	NeedsClarificationThreshold = 40.0
)

// Readiness returns 100 - 0.5a - 0.5b clamped to [0, 100].
func Readiness(ambiguityScore, assumptionScore float64) float64 {
	return clamp(100 - ambiguityScore*0.5 - assumptionScore*0.5)
}

// Classify maps a readiness score to its level.
func Classify(readiness float64) model.ReadinessLevel {
	switch {
	case readiness >= ReadyThreshold:
		return model.Ready
	case readiness >= NeedsClarificationThreshold:
		return model.NeedsClarification
	default:
		return model.HighRisk
	}
}

// Round rounds v to one decimal place.
func Round(v float64) float64 {
	return math.Round(v*10) / 10
}

// Scores holds the rounded outcome of one analysis.
type Scores struct {
	Ambiguity  float64
	Assumption float64
	Readiness  float64
	Level      model.ReadinessLevel
}

// Combine scores both issue lists against text. The level is derived from
// the rounded readiness score, the value callers see.
func Combine(amb []*model.AmbiguityIssue, asm []*model.AssumptionIssue, text string) Scores {
	a := ambiguity.Score(amb, text)
	b := assumption.Score(asm, text)
	r := Round(Readiness(a, b))
	return Scores{
		Ambiguity:  Round(a),
		Assumption: Round(b),
		Readiness:  r,
		Level:      Classify(r),
	}
}

// Result builds an AnalysisResult without suggestions.
func Result(amb []*model.AmbiguityIssue, asm []*model.AssumptionIssue, text string) *model.AnalysisResult {
	s := Combine(amb, asm, text)
	issues := model.Merge(amb, asm)
	return &model.AnalysisResult{
		AmbiguityScore:  s.Ambiguity,
		AssumptionScore: s.Assumption,
		ReadinessScore:  s.Readiness,
		ReadinessLevel:  s.Level,
		Issues:          issues,
		TotalIssues:     len(issues),
		Suggestions:     []string{},
	}
}

// Breakdown explains the scores of one analysis.
func Breakdown(amb []*model.AmbiguityIssue, asm []*model.AssumptionIssue, text string) model.Breakdown {
	a := ambiguity.Score(amb, text)
	b := assumption.Score(asm, text)
	r := Round(Readiness(a, b))

	types := make([]model.AmbiguityType, 0, len(amb))
	for _, issue := range amb {
		types = append(types, issue.Type)
	}

	categories := []catalog.Category{}
	seen := make(map[catalog.Category]bool)
	for _, issue := range asm {
		if !seen[issue.Category] {
			seen[issue.Category] = true
			categories = append(categories, issue.Category)
		}
	}

	return model.Breakdown{
		Text: text,
		Ambiguity: model.AmbiguityBreakdown{
			Score:      Round(a),
			IssueCount: len(amb),
			Issues:     types,
		},
		Assumptions: model.AssumptionBreakdown{
			Score:      Round(b),
			IssueCount: len(asm),
			Categories: categories,
		},
		Readiness: model.ReadinessBreakdown{
			Score:   r,
			Level:   Classify(r),
			Formula: fmt.Sprintf("100 - (%.1f * 0.5 + %.1f * 0.5)", a, b),
		},
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
