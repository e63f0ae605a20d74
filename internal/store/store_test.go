package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemematch-engine/internal/catalog"
	"schemematch-engine/internal/eligibility"
	"schemematch-engine/internal/profile"
	"schemematch-engine/internal/rank"
	"schemematch-engine/internal/vector"
)

func intp(v int) *int { return &v }

func fitTestStore(t *testing.T) *CatalogStore {
	t.Helper()
	records := []catalog.Record{
		{
			SchemeName:  "Old Age Pension",
			Level:       "Central",
			Details:     "Monthly pension for senior citizens",
			Eligibility: "Citizens above 60 years of age",
			Tags:        "pension,senior",
			Popularity:  1.0,
		},
		{
			SchemeName:  "Merit Scholarship",
			Level:       "Central",
			Details:     "Scholarship for students in college",
			Eligibility: "Students enrolled in recognized institutions",
			Tags:        "education,student",
			Popularity:  0.5,
		},
	}
	cfg := vector.Config{MaxFeatures: 100000, NGramMin: 1, NGramMax: 2, MinDocFreq: 1}
	cs, err := Fit(records, nil, "views", cfg)
	require.NoError(t, err)
	return cs
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.db")
	cs := fitTestStore(t)
	require.NoError(t, Save(path, cs))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cs.Columns, loaded.Columns)
	assert.Equal(t, "views", loaded.PopularityCol)
	assert.Equal(t, cs.Vectorizer.Cfg, loaded.Vectorizer.Cfg)
	assert.Equal(t, cs.Vectorizer.Vocab, loaded.Vectorizer.Vocab)
	assert.Equal(t, cs.Vectorizer.IDF, loaded.Vectorizer.IDF)
	require.Len(t, loaded.Records, 2)
	assert.Equal(t, cs.Records[0], loaded.Records[0])
	assert.Equal(t, cs.Records[1], loaded.Records[1])
}

func TestSaveLoadIdenticalRecommendations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.db")
	cs := fitTestStore(t)
	require.NoError(t, Save(path, cs))
	loaded, err := Load(path)
	require.NoError(t, err)

	m := eligibility.NewMatcher(nil)
	before := rank.New(cs.Records, cs.Columns, cs.Vectorizer, m)
	after := rank.New(loaded.Records, loaded.Columns, loaded.Vectorizer, m)

	p := profile.UserProfile{Age: intp(70)}
	a := before.Recommend(p, rank.Options{})
	b := after.Recommend(p, rank.Options{})

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Record.SchemeName, b[i].Record.SchemeName)
		assert.Equal(t, a[i].Hybrid, b[i].Hybrid)
		assert.Equal(t, a[i].Content, b[i].Content)
		assert.Equal(t, a[i].Eligibility, b[i].Eligibility)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.db")
	cs := fitTestStore(t)
	require.NoError(t, Save(path, cs))

	// Second save replaces the store wholesale; no stale tmp file remains.
	require.NoError(t, Save(path, cs))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Records, 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.db")
	require.NoError(t, os.WriteFile(path, []byte("not a sqlite file at all"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFitEmptyColumnsDefaults(t *testing.T) {
	cs := fitTestStore(t)
	assert.Equal(t, catalog.DefaultTextColumns, cs.Columns)
}
