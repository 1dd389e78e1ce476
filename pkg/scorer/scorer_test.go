package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/model"
)

func TestReadiness(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"no issues", 0, 0, 100},
		{"symmetric", 40, 60, 50},
		{"symmetric swapped", 60, 40, 50},
		{"worst", 100, 100, 0},
		{"clamped low", 150, 150, 0},
		{"clamped high", -20, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Readiness(tt.a, tt.b), 1e-9)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		readiness float64
		want      model.ReadinessLevel
	}{
		{100, model.Ready},
		{70, model.Ready},
		{69.9, model.NeedsClarification},
		{40, model.NeedsClarification},
		{39.9, model.HighRisk},
		{0, model.HighRisk},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.readiness), "readiness %v", tt.readiness)
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 87.8, Round(87.80000000001))
	assert.Equal(t, 69.9, Round(69.94))
	assert.Equal(t, 70.0, Round(69.96))
}

func TestCombine_NoIssues(t *testing.T) {
	s := Combine(nil, nil, "Response time is under 300 ms")
	assert.Equal(t, 0.0, s.Ambiguity)
	assert.Equal(t, 0.0, s.Assumption)
	assert.Equal(t, 100.0, s.Readiness)
	assert.Equal(t, model.Ready, s.Level)
}

func TestCombine_LevelUsesRoundedScore(t *testing.T) {
	// a single weak modality in a 50-word default text scores
	// (12 * 0.8 + 2) = 11.6, dampened to 9.28
	amb := []*model.AmbiguityIssue{model.NewAmbiguityIssue(model.WeakModality, "should", "")}
	s := Combine(amb, nil, "")
	assert.Equal(t, 9.3, s.Ambiguity)
	assert.Equal(t, 95.4, s.Readiness)
	assert.Equal(t, model.Ready, s.Level)
}

func TestResult(t *testing.T) {
	amb := []*model.AmbiguityIssue{model.NewAmbiguityIssue(model.SubjectiveTerm, "fast", "")}
	asm := []*model.AssumptionIssue{model.NewAssumptionIssue(model.ActionAssumption, catalog.CategoryState, "open", "", "")}

	r := Result(amb, asm, "Open it fast")
	assert.Equal(t, 2, r.TotalIssues)
	assert.Len(t, r.Issues, 2)
	assert.Equal(t, model.KindAmbiguity, r.Issues[0].IssueKind())
	assert.Equal(t, model.KindAssumption, r.Issues[1].IssueKind())
	assert.NotNil(t, r.Suggestions)
}

func TestBreakdown(t *testing.T) {
	amb := []*model.AmbiguityIssue{
		model.NewAmbiguityIssue(model.SubjectiveTerm, "fast", ""),
		model.NewAmbiguityIssue(model.SubjectiveTerm, "quick", ""),
	}
	asm := []*model.AssumptionIssue{
		model.NewAssumptionIssue(model.ActionAssumption, catalog.CategoryState, "open", "", ""),
		model.NewAssumptionIssue(model.ActionAssumption, catalog.CategoryData, "save", "", ""),
		model.NewAssumptionIssue(model.ActionAssumption, catalog.CategoryState, "save", "", ""),
	}

	b := Breakdown(amb, asm, "Open and save fast and quick")
	assert.Equal(t, 2, b.Ambiguity.IssueCount)
	assert.Equal(t, []model.AmbiguityType{model.SubjectiveTerm, model.SubjectiveTerm}, b.Ambiguity.Issues)
	assert.Equal(t, []catalog.Category{catalog.CategoryState, catalog.CategoryData}, b.Assumptions.Categories)
	assert.Equal(t, Classify(b.Readiness.Score), b.Readiness.Level)
	assert.Contains(t, b.Readiness.Formula, "* 0.5")

	s := Combine(amb, asm, "Open and save fast and quick")
	assert.Equal(t, s.Readiness, b.Readiness.Score)
}
