package ambiguity

import (
	"math"
	"strings"

	"github.com/helmcode/reqcheck/pkg/model"
)

var typeWeights = map[model.AmbiguityType]float64{
	model.SubjectiveTerm:       8,
	model.WeakModality:         12,
	model.UndefinedReference:   15,
	model.NonTestableStatement: 20,
}

const (
	unknownTypeWeight = 6
	defaultWordCount  = 50
	maxDensityScore   = 40
)

// Score rates issues found in text from 0 (clear) to 100 (very ambiguous).
// An empty issue list scores 0. When text is empty a 50-word text is
// assumed.
func Score(issues []*model.AmbiguityIssue, text string) float64 {
	if len(issues) == 0 {
		return 0
	}

	var order []model.AmbiguityType
	counts := make(map[model.AmbiguityType]int)
	for _, issue := range issues {
		if counts[issue.Type] == 0 {
			order = append(order, issue.Type)
		}
		counts[issue.Type]++
	}

	base := 0.0
	for _, typ := range order {
		weight, ok := typeWeights[typ]
		if !ok {
			weight = unknownTypeWeight
		}
		base += weight * repetition(counts[typ])
	}

	words := defaultWordCount
	if text != "" {
		words = len(strings.Fields(text))
	}

	density := math.Min(maxDensityScore, float64(len(issues))/float64(max(words, 10))*100)
	score := base*complexity(words) + density

	switch {
	case score < 20:
		score *= 0.8
	case score > 80:
		score = 80 + (score-80)*0.3
	}
	return clamp(score)
}

// repetition grows sub-linearly with the number of issues of one type.
func repetition(count int) float64 {
	switch {
	case count <= 1:
		return 1
	case count == 2:
		return 1.5
	case count <= 4:
		return 1.8
	default:
		return 2.0
	}
}

// complexity weighs short texts more heavily.
func complexity(words int) float64 {
	switch {
	case words < 20:
		return 1.2
	case words < 50:
		return 1.0
	default:
		return 0.8
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
