package httpapi

import (
	"net/http"
	"sync"
)

// NewMux returns the raw mux so main() can wrap it with middleware and
// still attach server-owned routes.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Recommendations
	rh := RecommendHandler{RecVal: d.RecVal, CfgVal: d.CfgVal}
	mux.HandleFunc("/recommend", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Recommend,
	}))
	mux.HandleFunc("/schemes", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.ListSchemes,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Training
	th := TrainHandler{
		RecVal:      d.RecVal,
		CfgVal:      d.CfgVal,
		TrainStatus: d.TrainStatus,
		Mu:          &sync.Mutex{},
		Hub:         d.Hub,
		Retrain:     d.Retrain,
	}
	mux.HandleFunc("/train", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: th.Run,
	}))
	mux.HandleFunc("/train/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: th.Status,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{RecVal: d.RecVal}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
