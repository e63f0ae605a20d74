package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"schemematch-engine/internal/config"
	"schemematch-engine/internal/events"
	"schemematch-engine/internal/httpapi"
	"schemematch-engine/internal/store"
)

var (
	serveModel string
	serveAddr  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recommendations over a local HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, userCfgPath, err := loadUserConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.App.Addr = serveAddr
		}
		if serveModel != "" {
			cfg.Model.Path = serveModel
		}

		var cfgVal, recVal, trainStatus atomic.Value
		cfgVal.Store(cfg)
		trainStatus.Store(httpapi.TrainStatus{})

		// A missing model is not fatal: the server comes up and /train
		// can build one. Anything else wrong with the store is.
		modelPath := resolvePath(cfg.Model.Path)
		cs, err := store.Load(modelPath)
		switch {
		case err == nil:
			recVal.Store(buildRecommender(cs, cfg))
			log.Printf("[serve] model=%s schemes=%d vocab=%d", modelPath, len(cs.Records), len(cs.Vectorizer.Vocab))
		case errors.Is(err, os.ErrNotExist):
			log.Printf("[serve] no model at %s, waiting for /train", modelPath)
		default:
			return fmt.Errorf("load model: %w", err)
		}

		hub := events.NewHub()

		retrain := func(cur config.Config, dataPath string) (int, error) {
			cs, err := trainModel(cur, resolvePath(dataPath), cur.Model.PopularityColumn)
			if err != nil {
				return 0, err
			}
			if err := store.Save(resolvePath(cur.Model.Path), cs); err != nil {
				return 0, err
			}
			recVal.Store(buildRecommender(cs, cur))
			return len(cs.Records), nil
		}

		mux := httpapi.NewMux(httpapi.Deps{
			Hub:         hub,
			RecVal:      &recVal,
			CfgVal:      &cfgVal,
			UserCfgPath: userCfgPath,
			LoadCfg:     func() (config.Config, error) { return config.Load(userCfgPath) },
			TrainStatus: &trainStatus,
			Retrain:     retrain,
		})

		handler := httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.AccessLog,
			httpapi.Recover,
			httpapi.RateLimit(cfg.API.RatePerSec, cfg.API.Burst),
			httpapi.Cors,
		)

		srv := &http.Server{
			Addr:              cfg.App.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Printf("[serve] listening on %s", cfg.App.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutCtx)
		})
		if err := g.Wait(); err != nil {
			return err
		}
		log.Printf("[serve] stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveModel, "model", "", "model store path (default from config)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
