package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Addr    string `yaml:"addr" json:"addr"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Model struct {
		Path             string   `yaml:"path" json:"path"`
		TextColumns      []string `yaml:"text_columns" json:"text_columns"`
		PopularityColumn string   `yaml:"popularity_column" json:"popularity_column"`
		MaxFeatures      int      `yaml:"max_features" json:"max_features"`
		MinDocFreq       int      `yaml:"min_df" json:"min_df"`
	} `yaml:"model" json:"model"`

	Scoring struct {
		TopK              int                `yaml:"top_k" json:"top_k"`
		ContentWeight     float64            `yaml:"content_weight" json:"content_weight"`
		EligibilityWeight float64            `yaml:"eligibility_weight" json:"eligibility_weight"`
		PopularityWeight  float64            `yaml:"popularity_weight" json:"popularity_weight"`
		RuleWeights       map[string]float64 `yaml:"rule_weights" json:"rule_weights"`
	} `yaml:"scoring" json:"scoring"`

	API struct {
		RatePerSec float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
		Burst      int     `yaml:"burst" json:"burst"`
	} `yaml:"api" json:"api"`
}

// Default is the built-in configuration; config.yml overrides it.
func Default() Config {
	var cfg Config
	cfg.App.Addr = "127.0.0.1:38471"
	cfg.App.DataDir = "."
	cfg.Model.Path = "scheme_store.db"
	cfg.Model.MaxFeatures = 100000
	cfg.Model.MinDocFreq = 2
	cfg.Scoring.TopK = 10
	cfg.Scoring.ContentWeight = 0.6
	cfg.Scoring.EligibilityWeight = 0.3
	cfg.Scoring.PopularityWeight = 0.1
	cfg.API.RatePerSec = 5
	cfg.API.Burst = 10
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
