package httpapi

import (
	"net/http"
	"sync/atomic"

	"schemematch-engine/internal/rank"
)

type HealthHandler struct {
	RecVal *atomic.Value // *rank.Recommender
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	schemes := 0
	loaded := false
	if rec, ok := h.RecVal.Load().(*rank.Recommender); ok && rec != nil {
		loaded = true
		schemes = len(rec.Records())
	}
	writeJSON(w, map[string]any{
		"ok":           true,
		"model_loaded": loaded,
		"schemes":      schemes,
	})
}
