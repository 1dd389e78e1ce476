package assumption

import (
	"math"
	"strings"

	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/model"
)

var categoryWeights = map[catalog.Category]float64{
	catalog.CategoryEnvironment: 18,
	catalog.CategoryData:        12,
	catalog.CategoryState:       15,
}

const (
	unknownCategoryWeight = 10
	defaultWordCount      = 50
	diversityPerType      = 3
	maxDiversityBonus     = 15
	maxDensityScore       = 35
)

// Score rates issues found in text from 0 (nothing assumed) to 100. An
// empty issue list scores 0. When text is empty a 50-word text is assumed.
func Score(issues []*model.AssumptionIssue, text string) float64 {
	if len(issues) == 0 {
		return 0
	}

	var order []catalog.Category
	counts := make(map[catalog.Category]int)
	kinds := make(map[model.AssumptionType]struct{})
	for _, issue := range issues {
		if counts[issue.Category] == 0 {
			order = append(order, issue.Category)
		}
		counts[issue.Category]++
		kinds[issue.Type] = struct{}{}
	}

	base := 0.0
	for _, cat := range order {
		weight, ok := categoryWeights[cat]
		if !ok {
			weight = unknownCategoryWeight
		}
		base += weight * repetition(counts[cat])
	}
	base += math.Min(maxDiversityBonus, float64(len(kinds)*diversityPerType))

	words := defaultWordCount
	if text != "" {
		words = len(strings.Fields(text))
	}

	density := math.Min(maxDensityScore, float64(len(issues))/float64(max(words, 8))*150)
	score := base*contextFactor(words) + density

	switch {
	case score < 15:
		score *= 0.9
	case score > 75:
		score = 75 + (score-75)*0.4
	}
	return math.Max(0, math.Min(100, score))
}

func repetition(count int) float64 {
	switch {
	case count <= 1:
		return 1
	case count == 2:
		return 1.6
	default:
		return 2.0
	}
}

// contextFactor weighs assumptions in short texts more heavily.
func contextFactor(words int) float64 {
	switch {
	case words < 15:
		return 1.3
	case words < 30:
		return 1.1
	default:
		return 1.0
	}
}
