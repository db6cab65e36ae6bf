package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sarthakjha889/go-aho-corasick/dict"
	"github.com/sarthakjha889/go-aho-corasick/internal/config"
	"github.com/sarthakjha889/go-aho-corasick/internal/server"
)

// serveCmd runs the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dictionaries over HTTP",
	Long: `Serve loads the dictionaries named in the configuration file and exposes
them over HTTP and websockets. A missing configuration file is created with
the defaults. Dictionary files are reloaded when they change if watching is
enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := config.New(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg := manager.Get()

		log := newLogger(cfg.App.LogLevel, cfg.App.LogFile)
		defer log.Close()
		if cfg.App.GinMode != "" {
			gin.SetMode(cfg.App.GinMode)
		}

		reg, err := dict.NewRegistry(log, dict.Options{
			CaseInsensitive: cfg.Matcher.CaseInsensitive,
			Normalise:       cfg.Matcher.Normalise,
			Overlapping:     cfg.Matcher.Overlapping,
		}, dict.CacheOptions{
			Capacity: cfg.Cache.Capacity,
			TTL:      cfg.Cache.TTL(),
		})
		if err != nil {
			return err
		}
		defer reg.Close()

		for name, path := range cfg.Dictionaries {
			if !filepath.IsAbs(path) {
				path = filepath.Join(filepath.Dir(configFile), path)
			}
			if _, err := reg.Load(name, path); err != nil {
				return err
			}
		}
		log.Info("dictionaries loaded", "count", len(cfg.Dictionaries))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		if cfg.Watch {
			g.Go(func() error { return reg.Watch(ctx) })
		}
		srv := server.New(log, reg, cfg.Server)
		g.Go(func() error { return srv.Run(ctx) })
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
