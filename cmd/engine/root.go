package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"schemematch-engine/internal/catalog"
	"schemematch-engine/internal/config"
	"schemematch-engine/internal/eligibility"
	"schemematch-engine/internal/rank"
	"schemematch-engine/internal/store"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:           "engine",
	Short:         "Welfare scheme recommendation engine",
	Long:          "Trains a scheme catalog model, ranks schemes for a citizen profile, and serves both over a local HTTP API.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	def := os.Getenv("SCHEMEMATCH_DATA_DIR")
	if def == "" {
		def = "."
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", def, "directory for config and model files")
}

// loadUserConfig bootstraps a user-editable config in the data dir and
// loads it over the built-in defaults.
func loadUserConfig() (config.Config, string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return config.Config{}, "", err
	}
	userCfgPath, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return cfg, userCfgPath, err
	}
	return cfg, userCfgPath, config.Validate(cfg)
}

// resolvePath anchors relative paths in the data dir.
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataDir, p)
}

// buildRecommender assembles the ranking pipeline from a loaded store,
// with any rule weight overrides from config applied to the matcher.
func buildRecommender(cs *store.CatalogStore, cfg config.Config) *rank.Recommender {
	rules := eligibility.ApplyOverrides(eligibility.DefaultRules(), cfg.Scoring.RuleWeights)
	columns := cs.Columns
	if len(columns) == 0 {
		columns = catalog.DefaultTextColumns
	}
	return rank.New(cs.Records, columns, cs.Vectorizer, eligibility.NewMatcher(rules))
}
