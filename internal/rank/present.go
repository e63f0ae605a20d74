package rank

// Presented is the caller-facing projection of a scored candidate: the
// fixed allow-list of catalog text columns plus the four scores. Internal
// vector state never leaves the engine.
type Presented struct {
	SchemeName       string  `json:"scheme_name"`
	Slug             string  `json:"slug,omitempty"`
	Level            string  `json:"level,omitempty"`
	Category         string  `json:"schemeCategory,omitempty"`
	Tags             string  `json:"tags,omitempty"`
	Details          string  `json:"details,omitempty"`
	Benefits         string  `json:"benefits,omitempty"`
	Eligibility      string  `json:"eligibility,omitempty"`
	Application      string  `json:"application,omitempty"`
	Documents        string  `json:"documents,omitempty"`
	ScoreHybrid      float64 `json:"score_hybrid"`
	ScoreContent     float64 `json:"score_content"`
	ScoreEligibility float64 `json:"score_eligibility"`
	ScorePopularity  float64 `json:"score_popularity"`
}

func Present(c ScoredCandidate) Presented {
	return Presented{
		SchemeName:       c.Record.SchemeName,
		Slug:             c.Record.Slug,
		Level:            c.Record.Level,
		Category:         c.Record.Category,
		Tags:             c.Record.Tags,
		Details:          c.Record.Details,
		Benefits:         c.Record.Benefits,
		Eligibility:      c.Record.Eligibility,
		Application:      c.Record.Application,
		Documents:        c.Record.Documents,
		ScoreHybrid:      c.Hybrid,
		ScoreContent:     c.Content,
		ScoreEligibility: c.Eligibility,
		ScorePopularity:  c.Popularity,
	}
}

func PresentAll(cs []ScoredCandidate) []Presented {
	out := make([]Presented, len(cs))
	for i, c := range cs {
		out[i] = Present(c)
	}
	return out
}
