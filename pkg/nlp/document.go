// Package nlp annotates requirement text with tokens, lemmas, part-of-speech
// tags, sentences and named entities.
//
// Two annotators are provided. ProseAnnotator does full tagging; BasicAnnotator
// only tokenizes and splits sentences and is used when tagging is unavailable.
// All offsets are byte offsets into the text passed to Annotate.
package nlp

import (
	"errors"
	"strings"
)

// ErrAnnotationUnavailable is returned by an annotator that cannot process
// text. Callers may fall back to a degraded annotator.
var ErrAnnotationUnavailable = errors.New("annotation unavailable")

// Universal part-of-speech tags.
const (
	POSNoun  = "NOUN"
	POSProp  = "PROPN"
	POSVerb  = "VERB"
	POSAux   = "AUX"
	POSAdj   = "ADJ"
	POSAdv   = "ADV"
	POSAdp   = "ADP"
	POSConj  = "CCONJ"
	POSNum   = "NUM"
	POSDet   = "DET"
	POSPron  = "PRON"
	POSPart  = "PART"
	POSIntj  = "INTJ"
	POSPunct = "PUNCT"
	POSSym   = "SYM"
	POSOther = "X"
)

// Dependency labels the detectors care about.
const (
	DepDet  = "det"
	DepPoss = "poss"
)

// Token is a single annotated token.
type Token struct {
	Text    string `json:"text"`
	Lemma   string `json:"lemma"`
	POS     string `json:"pos,omitempty"`
	Tag     string `json:"tag,omitempty"`
	Dep     string `json:"dep,omitempty"`
	IsAlpha bool   `json:"is_alpha"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// Lower returns the lower-cased surface form.
func (t Token) Lower() string {
	return strings.ToLower(t.Text)
}

// Sentence is a sentence span.
type Sentence struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Entity is a named entity span.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Document is the annotation of one text.
type Document struct {
	Text      string     `json:"text"`
	Tokens    []Token    `json:"tokens"`
	Sentences []Sentence `json:"sentences"`
	Entities  []Entity   `json:"entities,omitempty"`
	// Tagged is false when the annotator produced no POS or dependency
	// information.
	Tagged bool `json:"tagged"`
}

// Lower returns the lower-cased document text.
func (d *Document) Lower() string {
	return strings.ToLower(d.Text)
}

// Annotator turns raw text into a Document.
type Annotator interface {
	Annotate(text string) (*Document, error)
	Name() string
}

// locate finds needle in text at or after cursor and returns its span. When
// the needle cannot be found the span is empty at cursor.
func locate(text, needle string, cursor int) (start, end int) {
	if cursor > len(text) {
		cursor = len(text)
	}
	idx := strings.Index(text[cursor:], needle)
	if idx < 0 {
		return cursor, cursor
	}
	start = cursor + idx
	return start, start + len(needle)
}
