// Package analyzer runs the detectors over requirement text and assembles
// scored results, batch results and LLM-assisted rewrites.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/helmcode/reqcheck/pkg/ambiguity"
	"github.com/helmcode/reqcheck/pkg/assumption"
	"github.com/helmcode/reqcheck/pkg/llm"
	"github.com/helmcode/reqcheck/pkg/model"
	"github.com/helmcode/reqcheck/pkg/nlp"
	"github.com/helmcode/reqcheck/pkg/parser"
	"github.com/helmcode/reqcheck/pkg/prompts"
	"github.com/helmcode/reqcheck/pkg/scorer"
	"github.com/helmcode/reqcheck/pkg/suggestions"
)

type Analyzer struct {
	annotator   nlp.Annotator
	llm         llm.LLM
	logger      *zap.Logger
	maxBatch    int
	concurrency int
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger:      zap.NewNop(),
		maxBatch:    DefaultMaxBatch,
		concurrency: defaultConcurrency(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.annotator == nil {
		a.annotator = nlp.NewFallbackAnnotator(nlp.NewProseAnnotator(), a.logger)
	}
	return a
}

// MaxBatch returns the batch size cap.
func (a *Analyzer) MaxBatch() int {
	return a.maxBatch
}

// HasLLM reports whether Interrogate and Optimize are usable.
func (a *Analyzer) HasLLM() bool {
	return a.llm != nil
}

// Annotator returns the annotator used for every analysis.
func (a *Analyzer) Annotator() nlp.Annotator {
	return a.annotator
}

// detection is one annotated text with the issues of both detectors.
type detection struct {
	text string
	amb  []*model.AmbiguityIssue
	asm  []*model.AssumptionIssue
}

func (a *Analyzer) detect(ctx context.Context, text string) (*detection, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := a.annotator.Annotate(text)
	if err != nil {
		return nil, fmt.Errorf("annotate text: %w", err)
	}
	return &detection{
		text: text,
		amb:  ambiguity.Detect(doc),
		asm:  assumption.Detect(doc),
	}, nil
}

// AnalyzeText scores a single requirement and attaches clarifying questions.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*model.AnalysisResult, error) {
	d, err := a.detect(ctx, text)
	if err != nil {
		return nil, err
	}

	result := scorer.Result(d.amb, d.asm, d.text)
	result.Suggestions = a.GenerateSuggestions(result.Issues)

	a.logger.Debug("analysis complete",
		zap.Float64("readiness", result.ReadinessScore),
		zap.String("level", string(result.ReadinessLevel)),
		zap.Int("issues", result.TotalIssues),
	)
	return result, nil
}

// GenerateSuggestions returns the deduplicated clarifying questions for
// issues, in issue order.
func (a *Analyzer) GenerateSuggestions(issues []model.Issue) []string {
	return suggestions.Generate(issues)
}

// AnalyzeDetailed is AnalyzeText plus preprocessing details and a score
// breakdown.
func (a *Analyzer) AnalyzeDetailed(ctx context.Context, text string) (*model.DetailedResult, error) {
	d, err := a.detect(ctx, text)
	if err != nil {
		return nil, err
	}

	result := scorer.Result(d.amb, d.asm, d.text)
	result.Suggestions = a.GenerateSuggestions(result.Issues)

	cleaned := nlp.Clean(d.text)
	doc, err := a.annotator.Annotate(cleaned)
	if err != nil {
		return nil, fmt.Errorf("annotate cleaned text: %w", err)
	}

	return &model.DetailedResult{
		AnalysisResult: *result,
		Preprocessing:  preprocessing(cleaned, doc, a.annotator.Name()),
		Breakdown:      scorer.Breakdown(d.amb, d.asm, d.text),
	}, nil
}

func preprocessing(cleaned string, doc *nlp.Document, annotator string) model.Preprocessing {
	stats := nlp.Stats(doc)

	sentences := make([]string, 0, len(doc.Sentences))
	for _, s := range doc.Sentences {
		sentences = append(sentences, s.Text)
	}
	entities := doc.Entities
	if entities == nil {
		entities = []nlp.Entity{}
	}

	return model.Preprocessing{
		CleanedText: cleaned,
		Sentences:   sentences,
		TokenCount:  stats.TokenCount,
		WordCount:   stats.WordCount,
		Entities:    entities,
		Annotator:   annotator,
		Stats:       stats,
	}
}

// AnalyzeBatch analyzes up to MaxBatch texts concurrently. The returned
// items follow input order; a text that cannot be analyzed yields an item
// carrying an error marker instead of failing the batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string) ([]model.BatchItem, error) {
	if len(texts) == 0 {
		return nil, ErrBatchEmpty
	}
	if len(texts) > a.maxBatch {
		return nil, fmt.Errorf("%w: %d texts, limit is %d", ErrBatchTooLarge, len(texts), a.maxBatch)
	}

	items := make([]model.BatchItem, len(texts))
	g := new(errgroup.Group)
	g.SetLimit(a.concurrency)

	for i, text := range texts {
		if ctx.Err() != nil {
			items[i] = model.BatchItem{Index: i, Error: failureMessage(ctx.Err())}
			continue
		}
		g.Go(func() error {
			items[i] = a.analyzeItem(ctx, i, text)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, item := range items {
		if item.Failed() {
			failed++
		}
	}
	a.logger.Info("batch analysis complete",
		zap.Int("total", len(items)),
		zap.Int("failed", failed),
	)
	return items, ctx.Err()
}

func (a *Analyzer) analyzeItem(ctx context.Context, index int, text string) (item model.BatchItem) {
	item.Index = index
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("batch item panicked", zap.Int("index", index), zap.Any("panic", r))
			item = model.BatchItem{Index: index, Error: fmt.Sprintf("Analysis failed: %v", r)}
		}
	}()

	result, err := a.AnalyzeText(ctx, text)
	if err != nil {
		a.logger.Debug("batch item failed", zap.Int("index", index), zap.Error(err))
		item.Error = failureMessage(err)
		return item
	}
	item.Result = result
	return item
}

func failureMessage(err error) string {
	if errors.Is(err, ErrInvalidInput) {
		return InvalidTextMarker
	}
	return "Analysis failed: " + err.Error()
}

// Interrogate asks the language model for questions that expose hidden
// assumptions the detectors did not already report.
func (a *Analyzer) Interrogate(ctx context.Context, text string) (*model.Generated, error) {
	return a.generate(ctx, text, prompts.InterrogateSystem, prompts.InterrogateTemperature, prompts.BuildInterrogatePrompt)
}

// Optimize asks the language model to rewrite a test case into measurable,
// automation-ready steps addressing the detected issues.
func (a *Analyzer) Optimize(ctx context.Context, text string) (*model.Generated, error) {
	return a.generate(ctx, text, prompts.OptimizeSystem, prompts.OptimizeTemperature, prompts.BuildOptimizePrompt)
}

func (a *Analyzer) generate(ctx context.Context, text, system string, temperature float64,
	build func(string, []model.Issue) string) (*model.Generated, error) {
	if a.llm == nil {
		return nil, ErrLLMUnavailable
	}

	result, err := a.AnalyzeText(ctx, text)
	if err != nil {
		return nil, err
	}

	raw, err := a.llm.Chat(ctx, llm.Request{
		System:      system,
		Prompt:      build(strings.TrimSpace(text), result.Issues),
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM chat: %w", err)
	}

	return &model.Generated{
		Provider: a.llm.Name(),
		Output:   parser.CleanResponse(raw),
		Analysis: result,
	}, nil
}
