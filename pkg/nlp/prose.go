package nlp

import (
	"fmt"
	"sync"

	"github.com/jdkato/prose/v2"
)

// universalPOS maps a Penn Treebank tag to a universal POS tag.
func universalPOS(tag string) string {
	switch tag {
	case "NN", "NNS":
		return POSNoun
	case "NNP", "NNPS":
		return POSProp
	case "VB", "VBD", "VBG", "VBN", "VBP", "VBZ":
		return POSVerb
	case "MD":
		return POSAux
	case "JJ", "JJR", "JJS":
		return POSAdj
	case "RB", "RBR", "RBS", "WRB":
		return POSAdv
	case "IN":
		return POSAdp
	case "CC":
		return POSConj
	case "CD":
		return POSNum
	case "DT", "PDT", "WDT":
		return POSDet
	case "PRP", "PRP$", "WP", "WP$", "EX":
		return POSPron
	case "RP", "TO":
		return POSPart
	case "UH":
		return POSIntj
	case "SYM", "$", "#":
		return POSSym
	case ".", ",", ":", "(", ")", "``", "''", "-LRB-", "-RRB-":
		return POSPunct
	}
	return POSOther
}

// tagDependency derives the shallow dependency label for determiner and
// possessive tags. Other tokens carry no label.
func tagDependency(tag string) string {
	switch tag {
	case "DT", "PDT", "WDT":
		return DepDet
	case "PRP$", "WP$":
		return DepPoss
	}
	return ""
}

// ProseAnnotator tags text with github.com/jdkato/prose. The tagger and
// entity models are decoded on first use and shared by later calls.
type ProseAnnotator struct {
	entities bool

	once     sync.Once
	model    *prose.Model
	modelErr error
}

// ProseOption configures a ProseAnnotator.
type ProseOption func(*ProseAnnotator)

// WithEntities enables named-entity extraction.
func WithEntities(enabled bool) ProseOption {
	return func(a *ProseAnnotator) {
		a.entities = enabled
	}
}

// NewProseAnnotator creates a ProseAnnotator. Entity extraction is on by
// default.
func NewProseAnnotator(opts ...ProseOption) *ProseAnnotator {
	a := &ProseAnnotator{entities: true}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements Annotator.
func (a *ProseAnnotator) Name() string {
	return "prose"
}

// loadModel decodes the tagger and the entity extracter once. The extracter
// is always loaded so the model does not depend on WithEntities.
func (a *ProseAnnotator) loadModel() (*prose.Model, error) {
	a.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				a.modelErr = fmt.Errorf("%w: prose model: %v", ErrAnnotationUnavailable, r)
			}
		}()
		seed, err := prose.NewDocument("", prose.WithExtraction(true))
		if err != nil {
			a.modelErr = fmt.Errorf("%w: prose model: %v", ErrAnnotationUnavailable, err)
			return
		}
		a.model = seed.Model
	})
	return a.model, a.modelErr
}

// Annotate implements Annotator. Failures inside the tagger are reported as
// ErrAnnotationUnavailable.
func (a *ProseAnnotator) Annotate(text string) (doc *Document, err error) {
	model, err := a.loadModel()
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: prose: %v", ErrAnnotationUnavailable, r)
		}
	}()

	pd, err := prose.NewDocument(text, prose.UsingModel(model), prose.WithExtraction(a.entities))
	if err != nil {
		return nil, fmt.Errorf("%w: prose: %v", ErrAnnotationUnavailable, err)
	}

	doc = &Document{Text: text, Tagged: true}

	cursor := 0
	for _, tok := range pd.Tokens() {
		start, end := locate(text, tok.Text, cursor)
		if end > cursor {
			cursor = end
		}
		doc.Tokens = append(doc.Tokens, Token{
			Text:    tok.Text,
			Lemma:   Lemmatize(tok.Text),
			POS:     universalPOS(tok.Tag),
			Tag:     tok.Tag,
			Dep:     tagDependency(tok.Tag),
			IsAlpha: isAlpha(tok.Text),
			Start:   start,
			End:     end,
		})
	}

	cursor = 0
	for _, s := range pd.Sentences() {
		start, end := locate(text, s.Text, cursor)
		if end > cursor {
			cursor = end
		}
		doc.Sentences = append(doc.Sentences, Sentence{Text: s.Text, Start: start, End: end})
	}

	if a.entities {
		cursor = 0
		for _, e := range pd.Entities() {
			start, end := locate(text, e.Text, cursor)
			if end > cursor {
				cursor = end
			}
			doc.Entities = append(doc.Entities, Entity{Text: e.Text, Label: e.Label, Start: start, End: end})
		}
	}

	return doc, nil
}
