package nlp

import (
	"strings"
	"unicode"
)

var irregularLemmas = map[string]string{
	"is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be", "am": "be",
	"has": "have", "had": "have", "having": "have",
	"does": "do", "did": "do", "done": "do",
	"goes": "go", "went": "go", "gone": "go",
	"sees": "see", "saw": "see", "seen": "see",
	"made": "make", "sent": "send", "found": "find",
	"got": "get", "gotten": "get", "gave": "give", "given": "give",
	"took": "take", "taken": "take", "ran": "run",
	"chose": "choose", "chosen": "choose", "broke": "break", "broken": "break",
	"began": "begin", "begun": "begin", "shown": "show", "known": "know",
	"created": "create", "creating": "create", "used": "use", "using": "use",
	"going": "go", "changed": "change", "changing": "change",
	"children": "child", "people": "person", "data": "data",
}

// Lemmatize returns a lower-cased base form of word. It is a small
// suffix-stripping lemmatizer tuned for English requirement text.
func Lemmatize(word string) string {
	w := strings.ToLower(word)
	if l, ok := irregularLemmas[w]; ok {
		return l
	}
	if !isAlpha(w) || len(w) <= 3 {
		return w
	}

	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case hasAnySuffix(w, "sses", "ches", "shes", "xes", "zzes"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ing"):
		return verbStem(w, w[:len(w)-3], true)
	case strings.HasSuffix(w, "ed"):
		return verbStem(w, w[:len(w)-2], false)
	case strings.HasSuffix(w, "s") && !hasAnySuffix(w, "ss", "us", "is"):
		return w[:len(w)-1]
	}
	return w
}

// verbStem recovers the base form from stem, the word minus its -ed or -ing
// suffix. word is returned unchanged when stem is implausible.
func verbStem(word, stem string, ing bool) string {
	if len(stem) < 3 || !strings.ContainsAny(stem, "aeiouy") {
		return word
	}
	last := rune(stem[len(stem)-1])
	prev := rune(stem[len(stem)-2])

	if isVowel(last) {
		if ing {
			return stem
		}
		return word
	}
	// logged, running; but not passed, filled
	if last == prev && !strings.ContainsRune("slfz", last) {
		return stem[:len(stem)-1]
	}
	if !isVowel(prev) {
		// handled, produced, solved
		if strings.ContainsRune("lcv", last) && prev != last {
			return stem + "e"
		}
		return stem
	}
	if isVowel(rune(stem[len(stem)-3])) {
		return stem
	}
	if hasAnySuffix(stem, "en", "er", "el", "on", "or", "it", "al", "ow", "ew", "ay", "ey") {
		return stem
	}
	return stem + "e"
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiou", r)
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
