package vector

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Config controls vocabulary construction. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	MaxFeatures int `json:"max_features"`
	NGramMin    int `json:"ngram_min"`
	NGramMax    int `json:"ngram_max"`
	MinDocFreq  int `json:"min_df"`
}

func DefaultConfig() Config {
	return Config{MaxFeatures: 100000, NGramMin: 1, NGramMax: 2, MinDocFreq: 2}
}

// Vector is a sparse L2-normalized term-weight map keyed by vocabulary index.
type Vector map[int]float64

// Vectorizer is a TF-IDF model: a bounded vocabulary with smoothed inverse
// document frequencies. Fit builds it; Transform projects new text into the
// same space without refitting, which is what makes a persisted vocabulary
// re-usable after load.
type Vectorizer struct {
	Cfg   Config
	Vocab map[string]int // term -> index
	IDF   []float64      // indexed by vocabulary index
}

var ErrEmptyVocabulary = errors.New("vector: fit produced an empty vocabulary")

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// tokenize lowercases, splits into alphanumeric runs of length >= 2, and
// drops English stop words. Stop words go before n-gram assembly, so
// bigrams never straddle a removed word the same way twice.
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) < 2 || stopWords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// terms expands tokens into the configured n-gram range.
func (v *Vectorizer) terms(text string) []string {
	toks := tokenize(text)
	lo, hi := v.Cfg.NGramMin, v.Cfg.NGramMax
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	var out []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(toks); i++ {
			out = append(out, strings.Join(toks[i:i+n], " "))
		}
	}
	return out
}

// Fit builds the vocabulary and IDF weights over the corpus. A min-df
// cutoff that would empty the vocabulary falls back to min-df 1 instead of
// leaving Transform permanently broken; an empty or all-stopword corpus is
// the only fatal case.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return ErrEmptyVocabulary
	}

	df := make(map[string]int)
	tf := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range v.terms(doc) {
			tf[term]++
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}
	if len(df) == 0 {
		return ErrEmptyVocabulary
	}

	minDF := v.Cfg.MinDocFreq
	if minDF < 1 {
		minDF = 1
	}
	selected := selectTerms(df, minDF)
	if len(selected) == 0 {
		// min-df fallback: better a noisy vocabulary than none.
		selected = selectTerms(df, 1)
	}

	if v.Cfg.MaxFeatures > 0 && len(selected) > v.Cfg.MaxFeatures {
		// Keep the most frequent terms; ties break alphabetically so the
		// fitted model is deterministic across runs.
		sort.Slice(selected, func(i, j int) bool {
			if tf[selected[i]] != tf[selected[j]] {
				return tf[selected[i]] > tf[selected[j]]
			}
			return selected[i] < selected[j]
		})
		selected = selected[:v.Cfg.MaxFeatures]
	}
	sort.Strings(selected)

	v.Vocab = make(map[string]int, len(selected))
	v.IDF = make([]float64, len(selected))
	n := float64(len(docs))
	for i, term := range selected {
		v.Vocab[term] = i
		// Smoothed IDF, never zero, never negative.
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return nil
}

func selectTerms(df map[string]int, minDF int) []string {
	out := make([]string, 0, len(df))
	for term, n := range df {
		if n >= minDF {
			out = append(out, term)
		}
	}
	return out
}

// Transform maps text into the fitted space: raw term counts weighted by
// IDF, then L2-normalized so cosine similarity reduces to a dot product.
// Unknown terms are ignored. Text with no known terms yields an empty
// (all-zero) vector, never an error.
func (v *Vectorizer) Transform(text string) Vector {
	vec := make(Vector)
	for _, term := range v.terms(text) {
		if idx, ok := v.Vocab[term]; ok {
			vec[idx] += v.IDF[idx]
		}
	}
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx, w := range vec {
			vec[idx] = w / norm
		}
	}
	return vec
}

// TransformAll maps a document batch, preserving order.
func (v *Vectorizer) TransformAll(docs []string) []Vector {
	out := make([]Vector, len(docs))
	for i, d := range docs {
		out[i] = v.Transform(d)
	}
	return out
}

// Cosine computes cosine similarity between two transformed vectors.
// Both sides are already L2-normalized, so this is the sparse dot product,
// clamped to [0,1] against float drift.
func Cosine(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, w := range a {
		if bw, ok := b[idx]; ok {
			dot += w * bw
		}
	}
	if dot < 0 {
		return 0
	}
	if dot > 1 {
		return 1
	}
	return dot
}
