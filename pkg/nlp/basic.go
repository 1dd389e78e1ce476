package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	wordPattern     = regexp.MustCompile(`[A-Za-z0-9]+(?:[-'][A-Za-z0-9]+)*|[^\sA-Za-z0-9]`)
	sentencePattern = regexp.MustCompile(`[^.!?]+(?:[.!?]+|$)`)
)

// BasicAnnotator tokenizes and splits sentences with regular expressions.
// It assigns lemmas but no part-of-speech or dependency labels.
type BasicAnnotator struct{}

// NewBasicAnnotator returns a BasicAnnotator.
func NewBasicAnnotator() *BasicAnnotator {
	return &BasicAnnotator{}
}

// Name implements Annotator.
func (a *BasicAnnotator) Name() string {
	return "basic"
}

// Annotate implements Annotator. It never fails.
func (a *BasicAnnotator) Annotate(text string) (*Document, error) {
	doc := &Document{Text: text}

	for _, loc := range wordPattern.FindAllStringIndex(text, -1) {
		surface := text[loc[0]:loc[1]]
		doc.Tokens = append(doc.Tokens, Token{
			Text:    surface,
			Lemma:   Lemmatize(surface),
			IsAlpha: isAlpha(surface),
			Start:   loc[0],
			End:     loc[1],
		})
	}

	doc.Sentences = splitSentences(text)
	return doc, nil
}

func splitSentences(text string) []Sentence {
	var out []Sentence
	for _, loc := range sentencePattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		for start < end && unicode.IsSpace(rune(text[start])) {
			start++
		}
		for end > start && unicode.IsSpace(rune(text[end-1])) {
			end--
		}
		s := text[start:end]
		if strings.TrimFunc(s, unicode.IsPunct) == "" {
			continue
		}
		out = append(out, Sentence{Text: s, Start: start, End: end})
	}
	return out
}
