package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"schemematch-engine/internal/config"
	"schemematch-engine/internal/profile"
	"schemematch-engine/internal/rank"
)

type RecommendHandler struct {
	RecVal *atomic.Value // *rank.Recommender
	CfgVal *atomic.Value // config.Config
}

// recommendRequest is a profile with an optional per-call result limit.
type recommendRequest struct {
	profile.UserProfile
	TopK int `json:"top_k"`
}

func (h RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.RecVal.Load().(*rank.Recommender)
	if !ok || rec == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "model_not_loaded", "no trained model loaded")
		return
	}

	var req recommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if req.TopK < 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_top_k", "top_k must be >= 0")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	opts := rank.Options{
		TopK: cfg.Scoring.TopK,
		Weights: rank.Weights{
			Content:     cfg.Scoring.ContentWeight,
			Eligibility: cfg.Scoring.EligibilityWeight,
			Popularity:  cfg.Scoring.PopularityWeight,
		},
	}
	if req.TopK > 0 {
		opts.TopK = req.TopK
	}

	results := rank.PresentAll(rec.Recommend(req.UserProfile, opts))
	writeJSON(w, map[string]any{
		"count":   len(results),
		"results": results,
	})
}

func (h RecommendHandler) ListSchemes(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.RecVal.Load().(*rank.Recommender)
	if !ok || rec == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "model_not_loaded", "no trained model loaded")
		return
	}
	records := rec.Records()
	writeJSON(w, map[string]any{
		"count":   len(records),
		"schemes": records,
	})
}
