package eligibility

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"schemematch-engine/internal/catalog"
	"schemematch-engine/internal/profile"
	"schemematch-engine/internal/textutil"
)

// Scoring constants. Baseline guarantees no record scores zero, the weight
// share caps how much the weighted rule average can contribute, and the
// match boost rewards breadth of matched criteria.
const (
	Baseline       = 0.15
	weightShare    = 0.7
	matchBoostStep = 0.05
	matchBoostCap  = 0.20

	interestWeight       = 0.5
	interestFuzzyWeight  = 0.4
	interestFuzzyFloor   = 40
	profileFuzzyWeight   = 0.8
	profileFuzzyFloor    = 20
	partialRatioDiscount = 0.8
	plainRatioDiscount   = 0.7
)

// Matcher scores how well a record's eligibility text fits a profile.
// It is a fixed rule table plus fuzzy-similarity credits; construct once,
// use from any goroutine.
type Matcher struct {
	rules []Rule
}

func NewMatcher(rules []Rule) *Matcher {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Matcher{rules: rules}
}

// Rules exposes the active rule table, mainly for config reporting.
func (m *Matcher) Rules() []Rule { return m.rules }

// fieldPresent reports whether the profile field a rule requires is set.
func fieldPresent(name string, p profile.UserProfile) bool {
	switch name {
	case "age":
		return p.Age != nil
	case "income":
		return p.Income != nil
	case "gender":
		return p.Gender != ""
	case "caste":
		return p.CasteGroup != ""
	case "occupation":
		return p.Occupation != ""
	case "state":
		return p.State != ""
	case "interests":
		return len(p.Interests) > 0
	}
	return false
}

func (c Clause) fires(p profile.UserProfile, text string, rec catalog.Record) bool {
	if c.Band != "" {
		pred, ok := bands[c.Band]
		if !ok || !pred(p) {
			return false
		}
	}

	haystack := text
	if c.Field != "" {
		haystack = strings.ToLower(rec.Field(c.Field))
	}

	for _, term := range c.All {
		if !strings.Contains(haystack, expand(term, p)) {
			return false
		}
	}
	for _, term := range c.Absent {
		if strings.Contains(haystack, expand(term, p)) {
			return false
		}
	}
	if len(c.Any) > 0 {
		hit := false
		for _, term := range c.Any {
			if strings.Contains(haystack, expand(term, p)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func expand(term string, p profile.UserProfile) string {
	if term == "$state" {
		return strings.TrimSpace(textutil.FoldLower(p.State))
	}
	return term
}

// Score returns the eligibility confidence for one record, in [0,1].
// matched and total weights accumulate over every rule whose required
// profile field is present; fuzzy credits are added on top; the final
// score is baseline + 0.7 x (matched/total) + a breadth boost, clamped.
// No rule firing means the result is the baseline alone — total weight
// zero never divides.
func (m *Matcher) Score(rec catalog.Record, p profile.UserProfile) float64 {
	text := catalog.EligibilityText(rec)

	var matched, total float64
	matches := 0

	credit := func(w float64) {
		total += w
		matched += w
		matches++
	}

	for _, r := range m.rules {
		if !fieldPresent(r.Requires, p) {
			continue
		}
		fired := false
		for _, c := range r.Clauses {
			if c.fires(p, text, rec) {
				fired = true
				break
			}
		}
		if r.Soft {
			if fired {
				credit(r.Weight)
			}
			continue
		}
		total += r.Weight
		if fired {
			matched += r.Weight
			matches++
		}
	}

	// Interests: literal substring credit per interest, plus one fuzzy
	// partial-ratio credit over the joined interest text.
	if len(p.Interests) > 0 {
		joined := strings.ToLower(strings.Join(p.Interests, " "))
		for _, interest := range p.Interests {
			if it := strings.ToLower(strings.TrimSpace(interest)); it != "" && strings.Contains(text, it) {
				credit(interestWeight)
			}
		}
		if ratio := fuzzy.PartialRatio(joined, text); ratio > interestFuzzyFloor {
			credit(float64(ratio) / 100.0 * interestFuzzyWeight)
		}
	}

	// Whole-profile fuzzy match: blend of token-set, partial and plain
	// ratios, generously mapped so partial overlap still earns credit.
	if queryText := p.QueryText(); queryText != "" {
		q := strings.ToLower(queryText)
		best := float64(fuzzy.TokenSetRatio(q, text))
		if pr := float64(fuzzy.PartialRatio(q, text)) * partialRatioDiscount; pr > best {
			best = pr
		}
		if rr := float64(fuzzy.Ratio(q, text)) * plainRatioDiscount; rr > best {
			best = rr
		}
		if best > profileFuzzyFloor {
			credit(best / 100.0 * profileFuzzyWeight)
		}
	}

	weighted := 0.0
	if total > 0 {
		weighted = matched / total
		if weighted > 1 {
			weighted = 1
		}
	}
	boost := float64(matches) * matchBoostStep
	if boost > matchBoostCap {
		boost = matchBoostCap
	}

	score := Baseline + weightShare*weighted + boost
	if score > 1 {
		score = 1
	}
	return score
}
