package rank

import (
	"schemematch-engine/internal/catalog"
	"schemematch-engine/internal/profile"
)

// Scorer produces a [0,1] eligibility confidence for one catalog record.
type Scorer interface {
	Score(rec catalog.Record, p profile.UserProfile) float64
}
