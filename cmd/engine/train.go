package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"schemematch-engine/internal/catalog"
	"schemematch-engine/internal/config"
	"schemematch-engine/internal/store"
	"schemematch-engine/internal/vector"
)

var (
	trainData   string
	trainOut    string
	trainPopCol string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit a model from a catalog CSV and persist it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadUserConfig()
		if err != nil {
			return err
		}

		out := trainOut
		if out == "" {
			out = cfg.Model.Path
		}
		popCol := trainPopCol
		if popCol == "" {
			popCol = cfg.Model.PopularityColumn
		}

		cs, err := trainModel(cfg, trainData, popCol)
		if err != nil {
			return err
		}
		outPath := resolvePath(out)
		if err := store.Save(outPath, cs); err != nil {
			return fmt.Errorf("save model: %w", err)
		}

		log.Printf("[train] schemes=%d vocab=%d out=%s", len(cs.Records), len(cs.Vectorizer.Vocab), outPath)
		return nil
	},
}

func trainModel(cfg config.Config, dataPath, popCol string) (*store.CatalogStore, error) {
	records, err := catalog.LoadCSV(dataPath, popCol)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog %s has no rows", dataPath)
	}

	vcfg := vector.DefaultConfig()
	if cfg.Model.MaxFeatures > 0 {
		vcfg.MaxFeatures = cfg.Model.MaxFeatures
	}
	if cfg.Model.MinDocFreq > 0 {
		vcfg.MinDocFreq = cfg.Model.MinDocFreq
	}

	return store.Fit(records, cfg.Model.TextColumns, popCol, vcfg)
}

func init() {
	trainCmd.Flags().StringVar(&trainData, "data", "", "path to the catalog CSV (required)")
	trainCmd.Flags().StringVar(&trainOut, "out", "", "model store path (default from config)")
	trainCmd.Flags().StringVar(&trainPopCol, "popularity-col", "", "CSV column holding popularity counts")
	_ = trainCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(trainCmd)
}
