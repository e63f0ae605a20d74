package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

func Validate(cfg Config) error {
	var errs []string

	if _, _, err := net.SplitHostPort(cfg.App.Addr); err != nil {
		errs = append(errs, fmt.Sprintf("app.addr %q is not host:port", cfg.App.Addr))
	}
	if strings.TrimSpace(cfg.Model.Path) == "" {
		errs = append(errs, "model.path is required")
	}
	if cfg.Model.MaxFeatures <= 0 {
		errs = append(errs, "model.max_features must be > 0")
	}
	if cfg.Model.MinDocFreq < 1 {
		errs = append(errs, "model.min_df must be >= 1")
	}
	if cfg.Scoring.TopK <= 0 {
		errs = append(errs, "scoring.top_k must be > 0")
	}

	for name, w := range map[string]float64{
		"scoring.content_weight":     cfg.Scoring.ContentWeight,
		"scoring.eligibility_weight": cfg.Scoring.EligibilityWeight,
		"scoring.popularity_weight":  cfg.Scoring.PopularityWeight,
	} {
		if w < 0 {
			errs = append(errs, name+" must be >= 0")
		}
	}
	sum := cfg.Scoring.ContentWeight + cfg.Scoring.EligibilityWeight + cfg.Scoring.PopularityWeight
	if sum <= 0 {
		errs = append(errs, "scoring weights must not all be zero")
	}

	for tag, w := range cfg.Scoring.RuleWeights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("scoring.rule_weights[%s] must be >= 0", tag))
		}
	}

	if cfg.API.RatePerSec < 0 {
		errs = append(errs, "api.rate_per_sec must be >= 0")
	}
	if cfg.API.Burst < 0 {
		errs = append(errs, "api.burst must be >= 0")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
