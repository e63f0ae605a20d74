package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schemematch-engine/internal/profile"
	"schemematch-engine/internal/rank"
	"schemematch-engine/internal/store"
)

var (
	recModel       string
	recProfile     string
	recProfileFile string
	recTopK        int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank schemes for a citizen profile against a trained model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadUserConfig()
		if err != nil {
			return err
		}

		raw := []byte(recProfile)
		if recProfileFile != "" {
			raw, err = os.ReadFile(recProfileFile)
			if err != nil {
				return fmt.Errorf("read profile: %w", err)
			}
		}
		if len(raw) == 0 {
			return fmt.Errorf("either --profile or --profile-file is required")
		}
		p, err := profile.ParseJSON(raw)
		if err != nil {
			return fmt.Errorf("parse profile: %w", err)
		}

		modelPath := recModel
		if modelPath == "" {
			modelPath = cfg.Model.Path
		}
		cs, err := store.Load(resolvePath(modelPath))
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		rec := buildRecommender(cs, cfg)

		opts := rank.Options{
			TopK: cfg.Scoring.TopK,
			Weights: rank.Weights{
				Content:     cfg.Scoring.ContentWeight,
				Eligibility: cfg.Scoring.EligibilityWeight,
				Popularity:  cfg.Scoring.PopularityWeight,
			},
		}
		if recTopK > 0 {
			opts.TopK = recTopK
		}

		out := rank.PresentAll(rec.Recommend(p, opts))
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recModel, "model", "", "model store path (default from config)")
	recommendCmd.Flags().StringVar(&recProfile, "profile", "", "citizen profile as inline JSON")
	recommendCmd.Flags().StringVar(&recProfileFile, "profile-file", "", "path to a citizen profile JSON file")
	recommendCmd.Flags().IntVar(&recTopK, "top-k", 0, "number of results (default from config)")
	rootCmd.AddCommand(recommendCmd)
}
