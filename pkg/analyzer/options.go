package analyzer

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/helmcode/reqcheck/pkg/llm"
	"github.com/helmcode/reqcheck/pkg/nlp"
)

// DefaultMaxBatch is the largest batch AnalyzeBatch accepts by default.
const DefaultMaxBatch = 50

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithAnnotator sets the annotator. The default is prose tagging with a
// regex fallback.
func WithAnnotator(annotator nlp.Annotator) Option {
	return func(a *Analyzer) {
		a.annotator = annotator
	}
}

// WithLLM enables Interrogate and Optimize.
func WithLLM(l llm.LLM) Option {
	return func(a *Analyzer) {
		a.llm = l
	}
}

// WithMaxBatch sets the batch size cap.
func WithMaxBatch(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxBatch = n
		}
	}
}

// WithConcurrency bounds how many batch items are analyzed at once.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func defaultConcurrency() int {
	return max(1, runtime.NumCPU())
}
