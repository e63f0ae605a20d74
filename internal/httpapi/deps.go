package httpapi

import (
	"sync/atomic"

	"schemematch-engine/internal/config"
	"schemematch-engine/internal/events"
)

type Deps struct {
	Hub *events.Hub

	// Atomic stores; both swap under a running server.
	RecVal *atomic.Value // stores *rank.Recommender
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Atomic store for httpapi.TrainStatus.
	TrainStatus *atomic.Value

	// Retrain entrypoint (inject for testability). Returns the number of
	// schemes in the rebuilt model.
	Retrain func(cfg config.Config, dataPath string) (int, error)
}
