package nlp

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	disallowedChars = regexp.MustCompile(`[^\w\s.,!?:;\-()]`)
	spaceBeforePunc = regexp.MustCompile(`\s+([.,!?;:])`)
	spaceAfterPunc  = regexp.MustCompile(`([.,!?;:])\s+`)
)

// Clean normalizes whitespace, drops unusual symbols and tidies spacing
// around punctuation.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	text = disallowedChars.ReplaceAllString(text, "")
	text = spaceBeforePunc.ReplaceAllString(text, "$1")
	text = spaceAfterPunc.ReplaceAllString(text, "$1 ")
	return text
}

// TextStats describes a Document.
type TextStats struct {
	SentenceCount   int            `json:"sentence_count" yaml:"sentence_count"`
	TokenCount      int            `json:"token_count" yaml:"token_count"`
	WordCount       int            `json:"word_count" yaml:"word_count"`
	UniqueWords     int            `json:"unique_words" yaml:"unique_words"`
	AvgWordLength   float64        `json:"avg_word_length" yaml:"avg_word_length"`
	POSDistribution map[string]int `json:"pos_distribution" yaml:"pos_distribution"`
}

// Stats computes TextStats for doc. Words are alphabetic tokens; unique
// words are counted by lemma.
func Stats(doc *Document) TextStats {
	st := TextStats{
		SentenceCount:   len(doc.Sentences),
		TokenCount:      len(doc.Tokens),
		POSDistribution: make(map[string]int),
	}

	lemmas := make(map[string]struct{})
	letters := 0
	for _, t := range doc.Tokens {
		st.POSDistribution[t.POS]++
		if !t.IsAlpha {
			continue
		}
		st.WordCount++
		letters += len(t.Text)
		lemmas[strings.ToLower(t.Lemma)] = struct{}{}
	}
	st.UniqueWords = len(lemmas)
	st.AvgWordLength = float64(letters) / float64(max(1, st.WordCount))
	return st
}
