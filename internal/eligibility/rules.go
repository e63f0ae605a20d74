package eligibility

import (
	"strings"

	"schemematch-engine/internal/profile"
)

// Clause is one way a rule can fire: an optional profile band predicate
// plus term conditions over the record text. Any fires on one hit, All
// needs every term, Absent fires when none of its terms appear. The
// placeholder "$state" expands to the profile's state at evaluation time.
type Clause struct {
	Band   string   `yaml:"band,omitempty"`
	Field  string   `yaml:"field,omitempty"` // "" = combined eligibility text
	Any    []string `yaml:"any,omitempty"`
	All    []string `yaml:"all,omitempty"`
	Absent []string `yaml:"absent,omitempty"`
}

// Rule is one weighted criterion. Requires names the profile field that
// must be present for the rule to be evaluated at all. A normal rule adds
// its weight to the total whenever evaluated; a soft rule counts toward
// the total only when it fires, so its absence never penalizes.
type Rule struct {
	Tag      string   `yaml:"tag"`
	Weight   float64  `yaml:"weight"`
	Requires string   `yaml:"requires"`
	Soft     bool     `yaml:"soft,omitempty"`
	Clauses  []Clause `yaml:"clauses"`
}

// bands maps clause band names to profile predicates.
var bands = map[string]func(profile.UserProfile) bool{
	"age>=60":    func(p profile.UserProfile) bool { return p.Age != nil && *p.Age >= 60 },
	"age45to60":  func(p profile.UserProfile) bool { return p.Age != nil && *p.Age >= 45 && *p.Age <= 60 },
	"age>=18":    func(p profile.UserProfile) bool { return p.Age != nil && *p.Age >= 18 },
	"age18to35":  func(p profile.UserProfile) bool { return p.Age != nil && *p.Age >= 18 && *p.Age <= 35 },
	"age<18":     func(p profile.UserProfile) bool { return p.Age != nil && *p.Age < 18 },
	"gender:f":   func(p profile.UserProfile) bool { return strings.HasPrefix(strings.ToLower(p.Gender), "f") },
	"gender:m":   func(p profile.UserProfile) bool { return strings.HasPrefix(strings.ToLower(p.Gender), "m") },
	"gender:trans": func(p profile.UserProfile) bool {
		return strings.Contains(strings.ToLower(p.Gender), "trans")
	},
	"income<=150000": func(p profile.UserProfile) bool { return p.Income != nil && *p.Income <= 150000 },
	"income>150000":  func(p profile.UserProfile) bool { return p.Income != nil && *p.Income > 150000 },
	"income<=300000": func(p profile.UserProfile) bool { return p.Income != nil && *p.Income <= 300000 },
	"income<=500000": func(p profile.UserProfile) bool { return p.Income != nil && *p.Income <= 500000 },
	"caste:sc":       casteContains("sc"),
	"caste:st":       casteContains("st"),
	"caste:obc":      casteContains("obc"),
	"caste:bc":       casteContains("bc"),
	"caste:kapu":     casteContains("kapu"),
	"caste:general":  casteContains("general"),
	"caste:minority": func(p profile.UserProfile) bool {
		cg := strings.ToLower(p.CasteGroup)
		for _, m := range []string{"minority", "muslim", "christian", "sikh", "jain", "buddhist"} {
			if strings.Contains(cg, m) {
				return true
			}
		}
		return false
	},
	"occupation:farm":       occContainsAny("farm", "agricult"),
	"occupation:student":    occContainsAny("student", "school", "study"),
	"occupation:weaver":     occContainsAny("weav"),
	"occupation:law":        occContainsAny("law", "advocat"),
	"occupation:teach":      occContainsAny("teach"),
	"occupation:medic":      occContainsAny("medic"),
	"occupation:engineer":   occContainsAny("engineer"),
	"occupation:business":   occContainsAny("business", "entrepreneur", "trader"),
	"occupation:unemployed": occContainsAny("unemployed", "jobless"),
}

func casteContains(sub string) func(profile.UserProfile) bool {
	return func(p profile.UserProfile) bool {
		return strings.Contains(strings.ToLower(p.CasteGroup), sub)
	}
}

func occContainsAny(subs ...string) func(profile.UserProfile) bool {
	return func(p profile.UserProfile) bool {
		occ := strings.ToLower(p.Occupation)
		for _, s := range subs {
			if strings.Contains(occ, s) {
				return true
			}
		}
		return false
	}
}

// DefaultRules is the elaborated rule set: age bands, gender terms, income
// bands, caste/category terms, occupation terms, state/jurisdiction terms,
// plus partial-credit rules for records that simply don't mention an axis.
// Weights are tunable (see config), not load-bearing for correctness.
func DefaultRules() []Rule {
	return []Rule{
		// Age
		{Tag: "senior", Weight: 1.2, Requires: "age",
			Clauses: []Clause{{Band: "age>=60", Any: []string{"60", "senior", "old age", "elderly", "pension"}}}},
		{Tag: "middle_age", Weight: 1.0, Requires: "age",
			Clauses: []Clause{{Band: "age45to60", All: []string{"45", "60"}}}},
		{Tag: "adult", Weight: 0.5, Requires: "age",
			Clauses: []Clause{{Band: "age>=18", Any: []string{"18", "adult"}}}},
		{Tag: "youth", Weight: 0.7, Requires: "age",
			Clauses: []Clause{{Band: "age18to35", Any: []string{"youth", "young"}}}},
		{Tag: "child", Weight: 0.8, Requires: "age",
			Clauses: []Clause{{Band: "age<18", Any: []string{"child", "minor"}}}},
		{Tag: "age_mentioned", Weight: 0.3, Requires: "age", Soft: true,
			Clauses: []Clause{{Any: []string{"age"}}}},

		// Gender
		{Tag: "female", Weight: 1.2, Requires: "gender",
			Clauses: []Clause{{Band: "gender:f", Any: []string{"female", "women", "woman", "ladies"}}}},
		{Tag: "male", Weight: 0.8, Requires: "gender",
			Clauses: []Clause{{Band: "gender:m", Any: []string{"male", "men", "man"}}}},
		{Tag: "transgender", Weight: 1.0, Requires: "gender",
			Clauses: []Clause{{Band: "gender:trans", Any: []string{"transgender"}}}},
		{Tag: "gender_neutral", Weight: 0.2, Requires: "gender", Soft: true,
			Clauses: []Clause{{Absent: []string{"female", "women", "male", "men", "gender"}}}},

		// Income
		{Tag: "bpl", Weight: 1.0, Requires: "income",
			Clauses: []Clause{{Band: "income<=150000", Any: []string{"bpl", "below poverty", "economically weaker", "ews"}}}},
		{Tag: "apl", Weight: 0.6, Requires: "income",
			Clauses: []Clause{{Band: "income>150000", Any: []string{"apl", "above poverty"}}}},
		{Tag: "income_band", Weight: 0.5, Requires: "income",
			Clauses: []Clause{{Band: "income<=300000", Any: []string{"income"}}}},
		{Tag: "low_income", Weight: 0.4, Requires: "income",
			Clauses: []Clause{{Band: "income<=500000", Any: []string{"low income"}}}},
		{Tag: "income_mentioned", Weight: 0.3, Requires: "income", Soft: true,
			Clauses: []Clause{{Any: []string{"income"}}}},

		// Caste / category
		{Tag: "scheduled_caste", Weight: 1.0, Requires: "caste",
			Clauses: []Clause{{Band: "caste:sc", Any: []string{"sc", "scheduled caste"}}}},
		{Tag: "scheduled_tribe", Weight: 1.0, Requires: "caste",
			Clauses: []Clause{{Band: "caste:st", Any: []string{"st", "scheduled tribe"}}}},
		{Tag: "backward_class", Weight: 1.0, Requires: "caste",
			Clauses: []Clause{
				{Band: "caste:obc", Any: []string{"obc"}},
				{Band: "caste:bc", Any: []string{"backward class"}},
			}},
		{Tag: "minority", Weight: 0.8, Requires: "caste",
			Clauses: []Clause{{Band: "caste:minority", Any: []string{"minority"}}}},
		{Tag: "kapu", Weight: 1.0, Requires: "caste",
			Clauses: []Clause{{Band: "caste:kapu", Any: []string{"kapu"}}}},
		{Tag: "general", Weight: 0.6, Requires: "caste",
			Clauses: []Clause{{Band: "caste:general", Any: []string{"general"}}}},
		{Tag: "category_neutral", Weight: 0.3, Requires: "caste", Soft: true,
			Clauses: []Clause{{Absent: []string{"sc", "st", "obc", "minority", "caste", "category"}}}},

		// Occupation
		{Tag: "farmer", Weight: 1.2, Requires: "occupation",
			Clauses: []Clause{{Band: "occupation:farm", Any: []string{"farmer", "agriculture", "farming", "crop"}}}},
		{Tag: "student", Weight: 1.0, Requires: "occupation",
			Clauses: []Clause{{Band: "occupation:student", Any: []string{"student", "education", "scholarship", "school", "college"}}}},
		{Tag: "weaver", Weight: 1.0, Requires: "occupation",
			Clauses: []Clause{{Band: "occupation:weaver", Any: []string{"weaver"}}}},
		{Tag: "advocate", Weight: 0.9, Requires: "occupation",
			Clauses: []Clause{{Band: "occupation:law", Any: []string{"advocate", "lawyer"}}}},
		{Tag: "teacher", Weight: 0.9, Requires: "occupation",
			Clauses: []Clause{{Band: "occupation:teach", Any: []string{"teacher", "educator"}}}},
		{Tag: "doctor", Weight: 0.9, Requires: "occupation",
			Clauses: []Clause{{Band: "occupation:medic", Any: []string{"doctor", "medical"}}}},
		{Tag: "engineer", Weight: 0.8, Requires: "occupation",
			Clauses: []Clause{{Band: "occupation:engineer", Any: []string{"engineer"}}}},
		{Tag: "business", Weight: 0.9, Requires: "occupation",
			Clauses: []Clause{{Band: "occupation:business", Any: []string{"entrepreneur", "business", "startup"}}}},
		{Tag: "unemployed", Weight: 0.8, Requires: "occupation",
			Clauses: []Clause{{Band: "occupation:unemployed", Any: []string{"unemployed", "jobless"}}}},
		{Tag: "employment_scheme", Weight: 0.4, Requires: "occupation", Soft: true,
			Clauses: []Clause{{Any: []string{"employment", "job"}}}},

		// State / jurisdiction
		{Tag: "state_match", Weight: 0.7, Requires: "state",
			Clauses: []Clause{{Any: []string{"$state"}}}},
		{Tag: "central_scheme", Weight: 0.5, Requires: "state", Soft: true,
			Clauses: []Clause{{Field: "level", Any: []string{"central"}}}},
	}
}

// ApplyOverrides returns a copy of rules with per-tag weight overrides
// applied. Unknown tags are ignored.
func ApplyOverrides(rules []Rule, weights map[string]float64) []Rule {
	if len(weights) == 0 {
		return rules
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	for i := range out {
		if w, ok := weights[out[i].Tag]; ok {
			out[i].Weight = w
		}
	}
	return out
}
