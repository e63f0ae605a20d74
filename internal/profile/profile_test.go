package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func TestParseJSON(t *testing.T) {
	p, err := ParseJSON([]byte(`{"age": 65, "occupation": "farmer", "income": 100000, "state": "Telangana"}`))
	require.NoError(t, err)
	require.NotNil(t, p.Age)
	assert.Equal(t, 65, *p.Age)
	require.NotNil(t, p.Income)
	assert.Equal(t, 100000.0, *p.Income)
	assert.Equal(t, "farmer", p.Occupation)
	assert.Equal(t, "Telangana", p.State)

	_, err = ParseJSON([]byte(`{broken`))
	assert.Error(t, err)
}

func TestQueryTextEmptyProfile(t *testing.T) {
	assert.Equal(t, "", UserProfile{}.QueryText())
}

func TestQueryTextExpansions(t *testing.T) {
	tests := []struct {
		name    string
		p       UserProfile
		want    []string
		notWant []string
	}{
		{
			name: "senior",
			p:    UserProfile{Age: intp(65)},
			want: []string{"age 65", "senior", "pension", "old age"},
		},
		{
			name:    "youth",
			p:       UserProfile{Age: intp(25)},
			want:    []string{"age 25", "youth", "young"},
			notWant: []string{"senior"},
		},
		{
			name: "minor",
			p:    UserProfile{Age: intp(12)},
			want: []string{"child", "minor", "student"},
		},
		{
			name: "low income",
			p:    UserProfile{Income: floatp(100000)},
			want: []string{"income 100000", "bpl", "below poverty", "economically weaker"},
		},
		{
			name:    "middle income",
			p:       UserProfile{Income: floatp(250000)},
			want:    []string{"low income", "middle class"},
			notWant: []string{"bpl"},
		},
		{
			name: "scheduled caste",
			p:    UserProfile{CasteGroup: "SC"},
			want: []string{"scheduled caste"},
		},
		{
			name: "obc",
			p:    UserProfile{CasteGroup: "OBC"},
			want: []string{"backward class", "obc"},
		},
		{
			name: "farmer",
			p:    UserProfile{Occupation: "farmer"},
			want: []string{"farmer", "agriculture", "crop"},
		},
		{
			name: "female",
			p:    UserProfile{Gender: "female"},
			want: []string{"female", "women", "ladies"},
		},
		{
			name: "interests",
			p:    UserProfile{Interests: []string{"education", "health"}},
			want: []string{"scholarship", "college", "medical", "hospital"},
		},
		{
			name: "previous applications",
			p:    UserProfile{PreviousApplications: []string{"Old Age Pension"}},
			want: []string{"Old Age Pension"},
		},
		{
			name: "state literal",
			p:    UserProfile{State: "Telangana"},
			want: []string{"Telangana"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.p.QueryText()
			for _, w := range tt.want {
				assert.Contains(t, q, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, q, nw)
			}
		})
	}
}

func TestQueryTextFoldsAccents(t *testing.T) {
	p := UserProfile{Occupation: "crèche worker"}
	q := p.QueryText()
	assert.Contains(t, q, "creche worker")
	assert.False(t, strings.Contains(q, "è"))
}
