package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"schemematch-engine/internal/config"
	"schemematch-engine/internal/events"
)

type TrainStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastCount int    `json:"last_count"`
	Running   bool   `json:"running"`
}

type TrainHandler struct {
	RecVal      *atomic.Value // *rank.Recommender
	CfgVal      *atomic.Value // config.Config
	TrainStatus *atomic.Value // httpapi.TrainStatus
	Mu          *sync.Mutex   // serializes status check-and-set
	Hub         *events.Hub
	Retrain     func(cfg config.Config, dataPath string) (int, error)
}

type trainRequest struct {
	DataPath string `json:"data_path"`
}

func (h TrainHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.TrainStatus.Load().(TrainStatus)
	writeJSON(w, st)
}

func (h TrainHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req trainRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if req.DataPath == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_data_path", "data_path is required")
		return
	}

	// Check-and-set under the mutex so two concurrent requests cannot
	// both observe Running=false and start a run each.
	h.Mu.Lock()
	st := h.TrainStatus.Load().(TrainStatus)
	if st.Running {
		h.Mu.Unlock()
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}
	h.TrainStatus.Store(TrainStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})
	h.Mu.Unlock()

	reqID := RequestIDFrom(r.Context())
	go func() {
		cfg := h.CfgVal.Load().(config.Config)
		count, err := h.Retrain(cfg, req.DataPath)

		now := time.Now().Format(time.RFC3339)
		h.Mu.Lock()
		next := h.TrainStatus.Load().(TrainStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastCount = count
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.TrainStatus.Store(next)
		h.Mu.Unlock()
		if err == nil {
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeModelTrained, map[string]any{"schemes": count}))
		}
	}()

	writeJSON(w, map[string]any{"ok": true})
}
