package nlp

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Annotator kinds accepted by New.
const (
	KindAuto  = "auto"
	KindProse = "prose"
	KindBasic = "basic"
)

// FallbackAnnotator tries Primary and falls back to Secondary when Primary
// reports ErrAnnotationUnavailable.
type FallbackAnnotator struct {
	Primary   Annotator
	Secondary Annotator
	logger    *zap.Logger
}

// NewFallbackAnnotator returns an annotator that degrades to a BasicAnnotator.
func NewFallbackAnnotator(primary Annotator, logger *zap.Logger) *FallbackAnnotator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackAnnotator{
		Primary:   primary,
		Secondary: NewBasicAnnotator(),
		logger:    logger,
	}
}

// Name implements Annotator.
func (a *FallbackAnnotator) Name() string {
	return a.Primary.Name() + "+" + a.Secondary.Name()
}

// Annotate implements Annotator.
func (a *FallbackAnnotator) Annotate(text string) (*Document, error) {
	doc, err := a.Primary.Annotate(text)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrAnnotationUnavailable) {
		return nil, err
	}
	a.logger.Warn("annotator degraded",
		zap.String("primary", a.Primary.Name()),
		zap.String("fallback", a.Secondary.Name()),
		zap.Error(err),
	)
	return a.Secondary.Annotate(text)
}

// New builds an annotator by kind.
func New(kind string, logger *zap.Logger) (Annotator, error) {
	switch kind {
	case "", KindAuto:
		return NewFallbackAnnotator(NewProseAnnotator(), logger), nil
	case KindProse:
		return NewProseAnnotator(), nil
	case KindBasic:
		return NewBasicAnnotator(), nil
	default:
		return nil, fmt.Errorf("unknown annotator %q", kind)
	}
}
