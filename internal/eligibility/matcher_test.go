package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemematch-engine/internal/catalog"
	"schemematch-engine/internal/profile"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func TestScoreEmptyProfile(t *testing.T) {
	m := NewMatcher(nil)
	rec := catalog.Record{SchemeName: "Anything", Eligibility: "All citizens"}
	// No populated field means no rule applies: baseline only.
	assert.InDelta(t, Baseline, m.Score(rec, profile.UserProfile{}), 1e-9)
}

func TestScoreEmptyRecord(t *testing.T) {
	m := NewMatcher(nil)
	p := profile.UserProfile{Age: intp(30)}
	got := m.Score(catalog.Record{}, p)
	assert.GreaterOrEqual(t, got, Baseline)
	assert.LessOrEqual(t, got, 1.0)
}

func TestScoreMatchingBeatsConflicting(t *testing.T) {
	m := NewMatcher(nil)
	senior := catalog.Record{
		SchemeName:  "Old Age Pension",
		Eligibility: "Senior citizens above 60 years of age",
		Tags:        "pension,elderly",
	}
	youthOnly := catalog.Record{
		SchemeName:  "Youth Skill Training",
		Eligibility: "Applicants must be youth between 18 and 35 years",
		Tags:        "skill,youth",
	}
	p := profile.UserProfile{Age: intp(65)}

	sSenior := m.Score(senior, p)
	sYouth := m.Score(youthOnly, p)
	assert.Greater(t, sSenior, sYouth)
	assert.GreaterOrEqual(t, sYouth, Baseline)
}

func TestScoreFemaleRule(t *testing.T) {
	m := NewMatcher(nil)
	women := catalog.Record{
		SchemeName:  "Mahila Shakti",
		Eligibility: "Women entrepreneurs in rural areas",
	}
	p := profile.UserProfile{Gender: "female"}
	pm := profile.UserProfile{Gender: "male"}

	assert.Greater(t, m.Score(women, p), m.Score(women, pm))
}

func TestScoreStateMatch(t *testing.T) {
	m := NewMatcher(nil)
	local := catalog.Record{
		SchemeName:  "Rythu Bandhu",
		Eligibility: "Farmers resident in Telangana",
	}
	other := catalog.Record{
		SchemeName:  "Kerala Fishermen Welfare",
		Eligibility: "Fishermen resident in Kerala",
	}
	p := profile.UserProfile{State: "Telangana"}
	assert.Greater(t, m.Score(local, p), m.Score(other, p))
}

func TestScoreBounds(t *testing.T) {
	m := NewMatcher(nil)
	rec := catalog.Record{
		SchemeName:  "Comprehensive Welfare",
		Eligibility: "senior citizens women farmers students scheduled caste bpl low income telangana unemployed",
		Tags:        "pension,education,health,employment",
		Details:     "benefits for every category of applicant",
	}
	p := profile.UserProfile{
		Age:        intp(65),
		Income:     floatp(50000),
		CasteGroup: "SC",
		Occupation: "farmer",
		Gender:     "female",
		State:      "Telangana",
		Interests:  []string{"education", "health"},
	}
	got := m.Score(rec, p)
	assert.LessOrEqual(t, got, 1.0)
	assert.Greater(t, got, 0.5)
}

func TestApplyOverrides(t *testing.T) {
	rules := ApplyOverrides(DefaultRules(), map[string]float64{"farmer": 2.5, "no_such_tag": 9})
	found := false
	for _, r := range rules {
		if r.Tag == "farmer" {
			found = true
			assert.Equal(t, 2.5, r.Weight)
		}
		assert.NotEqual(t, 9.0, r.Weight)
	}
	require.True(t, found)

	// Defaults stay untouched.
	for _, r := range DefaultRules() {
		if r.Tag == "farmer" {
			assert.NotEqual(t, 2.5, r.Weight)
		}
	}
}

func TestRuleWeightChangesScore(t *testing.T) {
	rec := catalog.Record{
		SchemeName:  "Crop Input Subsidy",
		Eligibility: "All farmers with cultivable land",
	}
	p := profile.UserProfile{Occupation: "farmer"}

	base := NewMatcher(nil).Score(rec, p)
	boosted := NewMatcher(ApplyOverrides(DefaultRules(), map[string]float64{"farmer": 3.0})).Score(rec, p)
	assert.Greater(t, boosted, base)
}
