package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"schemematch-engine/internal/textutil"
)

// UserProfile is one query-time input. Every field is optional; an absent
// field simply contributes nothing to the query or the eligibility score.
type UserProfile struct {
	Name                 string   `json:"name,omitempty"`
	Phone                string   `json:"phone,omitempty"`
	Age                  *int     `json:"age,omitempty"`
	Income               *float64 `json:"income,omitempty"`
	CasteGroup           string   `json:"caste_group,omitempty"`
	Occupation           string   `json:"occupation,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	State                string   `json:"state,omitempty"`
	Interests            []string `json:"interests,omitempty"`
	PreviousApplications []string `json:"previous_applications,omitempty"`
}

// ParseJSON decodes a profile from an inline JSON document.
func ParseJSON(data []byte) (UserProfile, error) {
	var p UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return UserProfile{}, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

// QueryText expands the profile into a free-text query: each populated
// attribute emits its literal value plus domain synonyms, so a structured
// profile becomes comparable to free-text eligibility fields through
// bag-of-words similarity. An empty profile yields "".
func (p UserProfile) QueryText() string {
	var parts []string

	if p.Age != nil {
		age := *p.Age
		parts = append(parts, "age "+strconv.Itoa(age))
		switch {
		case age >= 60:
			parts = append(parts, "senior", "elderly", "pension", "old age")
		case age < 18:
			parts = append(parts, "child", "minor", "student", "youth")
		case age <= 35:
			parts = append(parts, "youth", "young", "adult")
		}
	}

	if p.Income != nil {
		income := *p.Income
		parts = append(parts, "income "+strconv.FormatFloat(income, 'f', -1, 64))
		switch {
		case income <= 150000:
			parts = append(parts, "bpl", "below poverty", "economically weaker", "poor")
		case income <= 300000:
			parts = append(parts, "low income", "middle class")
		}
	}

	if p.CasteGroup != "" {
		parts = append(parts, p.CasteGroup)
		cg := strings.ToLower(p.CasteGroup)
		if strings.Contains(cg, "sc") {
			parts = append(parts, "scheduled caste")
		}
		if strings.Contains(cg, "st") {
			parts = append(parts, "scheduled tribe")
		}
		if strings.Contains(cg, "obc") || strings.Contains(cg, "bc") {
			parts = append(parts, "backward class", "obc")
		}
	}

	if p.Occupation != "" {
		parts = append(parts, p.Occupation)
		occ := strings.ToLower(p.Occupation)
		if strings.Contains(occ, "farm") || strings.Contains(occ, "agricult") {
			parts = append(parts, "farmer", "agriculture", "farming", "crop")
		}
		if strings.Contains(occ, "student") || strings.Contains(occ, "school") {
			parts = append(parts, "student", "education", "scholarship", "school")
		}
		if strings.Contains(occ, "teach") {
			parts = append(parts, "teacher", "educator", "education")
		}
		if strings.Contains(occ, "business") || strings.Contains(occ, "entrepreneur") {
			parts = append(parts, "business", "entrepreneur", "startup", "trader")
		}
	}

	if p.Gender != "" {
		parts = append(parts, p.Gender)
		g := strings.ToLower(p.Gender)
		if strings.HasPrefix(g, "f") {
			parts = append(parts, "female", "women", "woman", "ladies")
		} else if strings.HasPrefix(g, "m") {
			parts = append(parts, "male", "men")
		}
	}

	if p.State != "" {
		parts = append(parts, p.State)
	}

	if len(p.Interests) > 0 {
		parts = append(parts, p.Interests...)
		all := strings.ToLower(strings.Join(p.Interests, " "))
		if strings.Contains(all, "education") {
			parts = append(parts, "education", "scholarship", "school", "college", "study")
		}
		if strings.Contains(all, "health") {
			parts = append(parts, "health", "medical", "hospital", "treatment")
		}
		if strings.Contains(all, "employment") || strings.Contains(all, "job") {
			parts = append(parts, "employment", "job", "career", "work")
		}
	}

	parts = append(parts, p.PreviousApplications...)

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if folded := textutil.Fold(part); folded != "" {
			out = append(out, folded)
		}
	}
	return strings.Join(out, " ")
}
