package nlp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLemmatize(t *testing.T) {
	tests := map[string]string{
		"logs":      "log",
		"Logs":      "log",
		"logged":    "log",
		"logging":   "log",
		"accesses":  "access",
		"accessed":  "access",
		"users":     "user",
		"entries":   "entry",
		"signed":    "sign",
		"opened":    "open",
		"visited":   "visit",
		"viewed":    "view",
		"submitted": "submit",
		"making":    "make",
		"handled":   "handle",
		"processed": "process",
		"is":        "be",
		"was":       "be",
		"this":      "this",
		"status":    "status",
		"need":      "need",
		"speed":     "speed",
		"string":    "string",
		"it":        "it",
		"dashboard": "dashboard",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Lemmatize(in))
		})
	}
}

func TestBasicAnnotator_Tokens(t *testing.T) {
	text := "The user-friendly UI shouldn't crash. It works!"
	doc, err := NewBasicAnnotator().Annotate(text)
	require.NoError(t, err)

	var surfaces []string
	for _, tok := range doc.Tokens {
		assert.Equal(t, tok.Text, text[tok.Start:tok.End])
		assert.Empty(t, tok.POS)
		surfaces = append(surfaces, tok.Text)
	}
	assert.Equal(t, []string{"The", "user-friendly", "UI", "shouldn't", "crash", ".", "It", "works", "!"}, surfaces)
	assert.False(t, doc.Tagged)
	assert.False(t, doc.Tokens[1].IsAlpha)
	assert.True(t, doc.Tokens[0].IsAlpha)
	assert.Equal(t, "work", doc.Tokens[7].Lemma)
}

func TestBasicAnnotator_Sentences(t *testing.T) {
	text := "First one. Second one?  Third"
	doc, err := NewBasicAnnotator().Annotate(text)
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 3)
	assert.Equal(t, "First one.", doc.Sentences[0].Text)
	assert.Equal(t, "Second one?", doc.Sentences[1].Text)
	assert.Equal(t, "Third", doc.Sentences[2].Text)
	for _, s := range doc.Sentences {
		assert.Equal(t, s.Text, text[s.Start:s.End])
	}
}

func TestBasicAnnotator_Empty(t *testing.T) {
	doc, err := NewBasicAnnotator().Annotate("")
	require.NoError(t, err)
	assert.Empty(t, doc.Tokens)
	assert.Empty(t, doc.Sentences)
}

func TestDocument_Lower(t *testing.T) {
	doc, err := NewBasicAnnotator().Annotate("User logs in")
	require.NoError(t, err)
	assert.Equal(t, "user logs in", doc.Lower())
	assert.Equal(t, "log", doc.Tokens[1].Lemma)
}

func TestProseAnnotator_OffsetsAndTags(t *testing.T) {
	text := "The system should respond quickly."
	doc, err := NewProseAnnotator(WithEntities(false)).Annotate(text)
	require.NoError(t, err)
	require.NotEmpty(t, doc.Tokens)
	assert.True(t, doc.Tagged)

	for _, tok := range doc.Tokens {
		assert.Equal(t, tok.Text, text[tok.Start:tok.End])
	}
	for _, tok := range doc.Tokens {
		if tok.Lower() == "should" {
			assert.Equal(t, POSAux, tok.POS)
		}
		if tok.Lower() == "the" {
			assert.Equal(t, DepDet, tok.Dep)
		}
	}
}

func TestProseAnnotator_SharesModel(t *testing.T) {
	a := NewProseAnnotator()

	first, err := a.Annotate("The system should load fast")
	require.NoError(t, err)
	model := a.model
	require.NotNil(t, model)

	second, err := a.Annotate("User logs in with valid credentials")
	require.NoError(t, err)
	assert.Same(t, model, a.model)
	assert.True(t, first.Tagged)
	assert.True(t, second.Tagged)
}

func TestProseAnnotator_EntitiesOff(t *testing.T) {
	a := NewProseAnnotator(WithEntities(false))
	doc, err := a.Annotate("Alice opens the report in Chrome")
	require.NoError(t, err)
	assert.Empty(t, doc.Entities)
	require.NotNil(t, a.model)
}

type failingAnnotator struct{ err error }

func (f failingAnnotator) Annotate(string) (*Document, error) { return nil, f.err }
func (f failingAnnotator) Name() string                       { return "failing" }

func TestFallbackAnnotator_Degrades(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	a := NewFallbackAnnotator(failingAnnotator{err: ErrAnnotationUnavailable}, zap.New(core))

	doc, err := a.Annotate("it works")
	require.NoError(t, err)
	assert.False(t, doc.Tagged)
	assert.Len(t, doc.Tokens, 2)
	assert.Equal(t, 1, logs.FilterMessage("annotator degraded").Len())
	assert.Equal(t, "failing+basic", a.Name())
}

func TestFallbackAnnotator_OtherErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	a := NewFallbackAnnotator(failingAnnotator{err: boom}, nil)

	_, err := a.Annotate("it works")
	assert.ErrorIs(t, err, boom)
}

func TestNew(t *testing.T) {
	for _, kind := range []string{"", KindAuto, KindProse, KindBasic} {
		a, err := New(kind, zap.NewNop())
		require.NoError(t, err, kind)
		assert.NotNil(t, a)
	}
	_, err := New("spacy", nil)
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  too   many\n spaces ", "too many spaces"},
		{"The app must load fast !", "The app must load fast!"},
		{"Symbols@# removed", "Symbols removed"},
		{"a,b ,  c", "a,b, c"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), tt.in)
	}
}

func TestStats(t *testing.T) {
	doc, err := NewBasicAnnotator().Annotate("Users log in. User logs out.")
	require.NoError(t, err)

	st := Stats(doc)
	assert.Equal(t, 2, st.SentenceCount)
	assert.Equal(t, 8, st.TokenCount)
	assert.Equal(t, 6, st.WordCount)
	// user, log, in, out
	assert.Equal(t, 4, st.UniqueWords)
	assert.InDelta(t, 21.0/6.0, st.AvgWordLength, 1e-9)
	assert.Equal(t, 8, st.POSDistribution[""])
}
