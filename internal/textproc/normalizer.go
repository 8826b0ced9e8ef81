package textproc

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords are common English words that carry no ranking signal.
// Removing them keeps the vocabulary small and scores meaningful.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true, "will": true,
	"with": true, "this": true, "but": true, "they": true, "have": true,
	"had": true, "what": true, "when": true, "where": true, "who": true, "which": true,
	"why": true, "how": true, "all": true, "any": true, "both": true, "each": true,
	"few": true, "more": true, "most": true, "other": true, "some": true, "such": true,
	"no": true, "nor": true, "not": true, "only": true, "own": true, "same": true,
	"so": true, "than": true, "too": true, "very": true, "can": true, "did": true,
	"do": true, "does": true, "doing": true, "done": true, "down": true, "up": true,
}

// minTokenLength drops single-character fragments left over from
// punctuation splitting.
const minTokenLength = 2

// Normalizer converts raw page or query text into index terms.
// The same Normalizer instance must be used for both indexing and query
// vectorization so the two vocabularies align.
//
// Design decision: The normalizer is stemming-free. For a small intranet
// corpus, stemming buys little recall and makes term frequencies harder
// to reason about; exact lowercase terms keep scoring transparent.
type Normalizer struct {
	// fold strips diacritical marks so "Café" and "cafe" index to the
	// same term. Intranet page titles frequently mix accented and
	// plain spellings of the same word.
	fold transform.Transformer
}

// NewNormalizer creates a Normalizer with the default English stop-word
// list and Unicode diacritic folding.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		fold: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

// Normalize tokenizes text into lowercased, diacritic-folded terms with
// stop words and sub-minimum tokens removed. Term order and duplicates
// are preserved: the indexer needs raw occurrence counts.
func (n *Normalizer) Normalize(text string) []string {
	folded, _, err := transform.String(n.fold, text)
	if err != nil {
		// Folding is best-effort; fall back to the raw text rather
		// than dropping the document.
		folded = text
	}

	lower := strings.ToLower(folded)

	split := func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}

	var terms []string
	for _, token := range strings.FieldsFunc(lower, split) {
		if len(token) < minTokenLength {
			continue
		}
		if stopWords[token] {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// IsStopWord reports whether a lowercased token is on the stop-word list.
func IsStopWord(token string) bool {
	return stopWords[token]
}
