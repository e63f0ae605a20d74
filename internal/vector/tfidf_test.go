package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercase and split", "Farmer SUBSIDY scheme", []string{"farmer", "subsidy", "scheme"}},
		{"stop words dropped", "the farmer and his crop", []string{"farmer", "crop"}},
		{"single chars dropped", "a b crop x", []string{"crop"}},
		{"digits kept", "pension 60 years", []string{"pension", "60", "years"}},
		{"punctuation split", "women,child;welfare", []string{"women", "child", "welfare"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.in))
		})
	}
}

func TestTermsBigrams(t *testing.T) {
	v := &Vectorizer{Cfg: Config{NGramMin: 1, NGramMax: 2}}
	got := v.terms("old age pension")
	assert.Equal(t, []string{"old", "age", "pension", "old age", "age pension"}, got)
}

func TestFitBuildsDeterministicVocabulary(t *testing.T) {
	docs := []string{
		"farmer crop subsidy",
		"farmer crop insurance",
		"student scholarship",
	}
	cfg := Config{MaxFeatures: 100, NGramMin: 1, NGramMax: 2, MinDocFreq: 2}

	a := &Vectorizer{Cfg: cfg}
	require.NoError(t, a.Fit(docs))
	b := &Vectorizer{Cfg: cfg}
	require.NoError(t, b.Fit(docs))

	assert.Equal(t, a.Vocab, b.Vocab)
	assert.Equal(t, a.IDF, b.IDF)

	// min-df 2 keeps only terms seen in two docs.
	assert.Contains(t, a.Vocab, "farmer")
	assert.Contains(t, a.Vocab, "farmer crop")
	assert.NotContains(t, a.Vocab, "scholarship")
}

func TestFitMinDFFallback(t *testing.T) {
	// Every term appears once; min-df 2 would empty the vocabulary.
	docs := []string{"farmer subsidy", "student scholarship"}
	v := &Vectorizer{Cfg: Config{MaxFeatures: 100, NGramMin: 1, NGramMax: 1, MinDocFreq: 2}}
	require.NoError(t, v.Fit(docs))
	assert.Contains(t, v.Vocab, "farmer")
	assert.Contains(t, v.Vocab, "scholarship")
}

func TestFitEmptyCorpus(t *testing.T) {
	v := &Vectorizer{Cfg: DefaultConfig()}
	assert.ErrorIs(t, v.Fit(nil), ErrEmptyVocabulary)

	v = &Vectorizer{Cfg: DefaultConfig()}
	assert.ErrorIs(t, v.Fit([]string{"the and of", "a an"}), ErrEmptyVocabulary)
}

func TestFitMaxFeaturesCap(t *testing.T) {
	docs := []string{
		"alpha alpha alpha beta",
		"alpha beta gamma",
	}
	v := &Vectorizer{Cfg: Config{MaxFeatures: 2, NGramMin: 1, NGramMax: 1, MinDocFreq: 1}}
	require.NoError(t, v.Fit(docs))
	require.Len(t, v.Vocab, 2)
	assert.Contains(t, v.Vocab, "alpha")
	assert.Contains(t, v.Vocab, "beta")
	assert.NotContains(t, v.Vocab, "gamma")
}

func TestTransformNormalized(t *testing.T) {
	docs := []string{"farmer crop subsidy", "farmer crop loan", "pension scheme"}
	v := &Vectorizer{Cfg: Config{MaxFeatures: 100, NGramMin: 1, NGramMax: 2, MinDocFreq: 1}}
	require.NoError(t, v.Fit(docs))

	vec := v.Transform("farmer crop subsidy")
	require.NotEmpty(t, vec)

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)

	// Out-of-vocabulary text maps to the empty vector.
	assert.Empty(t, v.Transform("unrelated gibberish nowhere"))
}

func TestCosine(t *testing.T) {
	docs := []string{"farmer crop subsidy", "student scholarship exam", "farmer loan"}
	v := &Vectorizer{Cfg: Config{MaxFeatures: 100, NGramMin: 1, NGramMax: 2, MinDocFreq: 1}}
	require.NoError(t, v.Fit(docs))

	a := v.Transform("farmer crop subsidy")
	b := v.Transform("student scholarship exam")

	assert.InDelta(t, 1.0, Cosine(a, a), 1e-9, "identical vectors")
	assert.InDelta(t, 0.0, Cosine(a, b), 1e-9, "disjoint vocabulary")
	assert.Equal(t, 0.0, Cosine(a, Vector{}), "empty vector")

	c := v.Transform("farmer loan")
	sim := Cosine(a, c)
	assert.Greater(t, sim, 0.0)
	assert.Less(t, sim, 1.0)
}
