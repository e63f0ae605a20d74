package catalog

// Record is one scheme row from the catalog. Every text field is a defined
// string (the loader coerces missing values to ""), so downstream scoring
// never sees a null. Popularity is derived at load time, normalized to [0,1].
type Record struct {
	SchemeName  string  `json:"scheme_name"`
	Slug        string  `json:"slug"`
	Level       string  `json:"level"`
	Category    string  `json:"schemeCategory"`
	Tags        string  `json:"tags"`
	Details     string  `json:"details"`
	Benefits    string  `json:"benefits"`
	Eligibility string  `json:"eligibility"`
	Application string  `json:"application"`
	Documents   string  `json:"documents"`
	State       string  `json:"state,omitempty"`
	States      string  `json:"states,omitempty"`
	Popularity  float64 `json:"-"`
}

// DefaultTextColumns is the fixed ordered field list fed to the vectorizer.
var DefaultTextColumns = []string{
	"scheme_name", "details", "benefits", "eligibility",
	"application", "documents", "schemeCategory", "tags",
}

// Field returns the named text field, or "" for unknown names so a stale
// column list degrades to empty text instead of failing.
func (r Record) Field(name string) string {
	switch name {
	case "scheme_name":
		return r.SchemeName
	case "slug":
		return r.Slug
	case "level":
		return r.Level
	case "schemeCategory":
		return r.Category
	case "tags":
		return r.Tags
	case "details":
		return r.Details
	case "benefits":
		return r.Benefits
	case "eligibility":
		return r.Eligibility
	case "application":
		return r.Application
	case "documents":
		return r.Documents
	case "state":
		return r.State
	case "states":
		return r.States
	}
	return ""
}

func (r *Record) setField(name, value string) {
	switch name {
	case "scheme_name":
		r.SchemeName = value
	case "slug":
		r.Slug = value
	case "level":
		r.Level = value
	case "schemeCategory":
		r.Category = value
	case "tags":
		r.Tags = value
	case "details":
		r.Details = value
	case "benefits":
		r.Benefits = value
	case "eligibility":
		r.Eligibility = value
	case "application":
		r.Application = value
	case "documents":
		r.Documents = value
	case "state":
		r.State = value
	case "states":
		r.States = value
	}
}
