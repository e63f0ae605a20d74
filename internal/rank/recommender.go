package rank

import (
	"math"
	"sort"
	"strings"

	"schemematch-engine/internal/catalog"
	"schemematch-engine/internal/profile"
	"schemematch-engine/internal/textutil"
	"schemematch-engine/internal/vector"
)

// Weights blend the three score axes into the hybrid score. They should
// sum to one for interpretability but are not required to.
type Weights struct {
	Content     float64 `yaml:"content" json:"content"`
	Eligibility float64 `yaml:"eligibility" json:"eligibility"`
	Popularity  float64 `yaml:"popularity" json:"popularity"`
}

func DefaultWeights() Weights {
	return Weights{Content: 0.6, Eligibility: 0.3, Popularity: 0.1}
}

// Options tune one recommend call. Zero values fall back to defaults.
type Options struct {
	TopK    int
	Weights Weights
}

const DefaultTopK = 10

// ScoredCandidate is one ranked result: the record plus its three axis
// scores and the presentation-normalized hybrid. Built fresh per call,
// never persisted.
type ScoredCandidate struct {
	Record      catalog.Record
	Content     float64
	Eligibility float64
	Popularity  float64
	Hybrid      float64
}

// Content boosting: raw cosine similarities on short eligibility text
// cluster near zero, so scores get a square-root lift and the nonzero
// range is rescaled into [contentFloor, 1].
const contentFloor = 0.3

// Presentation band: the hybrid min-max range maps into
// [displayLo, displayLo+displaySpan] so top results read as confident
// matches; a total tie collapses to displayTie.
const (
	displayLo   = 0.4
	displaySpan = 0.55
	displayTie  = 0.5
)

// defaultQuery keeps cosine similarity alive for an empty profile.
const defaultQuery = "government scheme benefit assistance subsidy farmer student women minority " +
	"employment education health pension insurance loan training disability rural " +
	"urban sanitation agriculture entrepreneur skilling scholarship"

// queryBoilerplate stabilizes low-specificity profile queries.
const queryBoilerplate = " government scheme benefit assistance subsidy support aid help"

// Recommender ranks the catalog against a profile. It owns no global
// state: everything it reads is fixed at construction, so concurrent
// Recommend calls on one value are safe.
type Recommender struct {
	records    []catalog.Record
	columns    []string
	vectorizer *vector.Vectorizer
	scorer     Scorer
	docVecs    []vector.Vector
}

// New builds a query-ready recommender. Document vectors come from
// Transform over the stored table — the same path a reloaded store takes,
// so a fit-then-query and a save-load-query run score identically.
func New(records []catalog.Record, columns []string, v *vector.Vectorizer, scorer Scorer) *Recommender {
	return &Recommender{
		records:    records,
		columns:    columns,
		vectorizer: v,
		scorer:     scorer,
		docVecs:    v.TransformAll(catalog.Documents(records, columns)),
	}
}

// Records exposes the catalog table, e.g. for the listing endpoint.
func (r *Recommender) Records() []catalog.Record { return r.records }

// Recommend scores every candidate along content, eligibility and
// popularity, blends them, and returns the top K in descending hybrid
// order with original catalog order breaking ties.
func (r *Recommender) Recommend(p profile.UserProfile, opts Options) []ScoredCandidate {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}

	idxs := r.filterByState(p)

	query := p.QueryText()
	if query == "" {
		query = defaultQuery
	} else {
		query += queryBoilerplate
	}
	queryVec := r.vectorizer.Transform(query)

	content := make([]float64, len(idxs))
	elig := make([]float64, len(idxs))
	pop := make([]float64, len(idxs))
	for i, idx := range idxs {
		content[i] = vector.Cosine(queryVec, r.docVecs[idx])
		elig[i] = r.scorer.Score(r.records[idx], p)
		pop[i] = r.records[idx].Popularity
	}

	boosted := boostContent(content)

	hybrid := make([]float64, len(idxs))
	for i := range idxs {
		hybrid[i] = opts.Weights.Content*boosted[i] +
			opts.Weights.Eligibility*elig[i] +
			opts.Weights.Popularity*pop[i]
	}
	display := normalizeDisplay(hybrid)

	order := make([]int, len(idxs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return display[order[a]] > display[order[b]]
	})
	if len(order) > opts.TopK {
		order = order[:opts.TopK]
	}

	out := make([]ScoredCandidate, len(order))
	for i, j := range order {
		out[i] = ScoredCandidate{
			Record:      r.records[idxs[j]],
			Content:     boosted[j],
			Eligibility: elig[j],
			Popularity:  pop[j],
			Hybrid:      display[j],
		}
	}
	return out
}

// filterByState keeps central/nationwide schemes plus anything tied to the
// profile's state, falling back to the full catalog when the filter would
// return nothing. No state on the profile means no filter at all.
func (r *Recommender) filterByState(p profile.UserProfile) []int {
	all := make([]int, len(r.records))
	for i := range all {
		all[i] = i
	}
	st := strings.TrimSpace(textutil.FoldLower(p.State))
	if st == "" {
		return all
	}

	var keep []int
	for i, rec := range r.records {
		if recordMatchesState(rec, st) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return all
	}
	return keep
}

// stateTextColumns are the fields scanned for a state-name mention.
var stateTextColumns = []string{"details", "eligibility", "tags", "scheme_name", "schemeCategory"}

func recordMatchesState(rec catalog.Record, st string) bool {
	if strings.Contains(strings.ToLower(rec.Level), "central") {
		return true
	}
	if strings.Contains(textutil.FoldLower(rec.State), st) ||
		strings.Contains(textutil.FoldLower(rec.States), st) {
		return true
	}
	for _, col := range stateTextColumns {
		if strings.Contains(textutil.FoldLower(rec.Field(col)), st) {
			return true
		}
	}
	return false
}

// boostContent applies the monotonic square-root lift and rescales the
// nonzero range into [contentFloor, 1]. All-zero scores become a uniform
// contentFloor rather than dividing by a zero range.
func boostContent(scores []float64) []float64 {
	out := make([]float64, len(scores))
	maxV := 0.0
	for i, s := range scores {
		if s < 0 {
			s = 0
		}
		out[i] = math.Sqrt(s)
		if out[i] > maxV {
			maxV = out[i]
		}
	}
	for i := range out {
		if maxV > 0 {
			out[i] = contentFloor + (1-contentFloor)*(out[i]/maxV)
		} else {
			out[i] = contentFloor
		}
	}
	return out
}

// normalizeDisplay rescales the hybrid min-max range into the display
// band; a flat field collapses to the tie value.
func normalizeDisplay(hybrid []float64) []float64 {
	if len(hybrid) == 0 {
		return nil
	}
	lo, hi := hybrid[0], hybrid[0]
	for _, h := range hybrid {
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	out := make([]float64, len(hybrid))
	for i, h := range hybrid {
		if hi > lo {
			out[i] = displayLo + displaySpan*((h-lo)/(hi-lo+1e-9))
		} else {
			out[i] = displayTie
		}
	}
	return out
}
