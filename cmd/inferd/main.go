package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inferd/internal/config"
	"inferd/internal/httpapi"
	"inferd/internal/registry"
	"inferd/internal/serving"
	"inferd/internal/watcher"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var (
		cfgPath  string
		addr     string
		model    string
		watch    bool
		logLevel string
	)
	root := &cobra.Command{
		Use:           "inferd",
		Short:         "Single-model inference serving daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			cfg = config.ApplyEnv(cfg)
			// Flags win over file and env when set.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("model") {
				cfg.ModelPath = model
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch = watch
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			cfg = config.Defaults(cfg)
			if cfg.ModelPath == "" {
				return fmt.Errorf("model path is required (--model, model_path in config, or INFERD_MODEL_PATH)")
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&cfgPath, "config", os.Getenv("INFERD_CONFIG"), "Path to config file (.yaml/.json/.toml)")
	root.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address, e.g. :8080")
	root.Flags().StringVar(&model, "model", "", "Path to the model artifact manifest")
	root.Flags().BoolVar(&watch, "watch", false, "Reload automatically when the artifact file changes")
	root.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	return root
}

func run(cfg config.Config) error {
	log := newLogger(cfg)

	reg := registry.New(log)
	svc := serving.New(reg, cfg.ModelPath, log)

	// Base context canceled on shutdown so in-progress handler work stops too.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	// A failed initial load is not fatal: the process serves an unhealthy
	// readiness signal and can be fixed with a reload.
	if err := svc.Load(baseCtx); err != nil {
		log.Error().Err(err).Str("model_path", cfg.ModelPath).Msg("initial model load failed, serving unhealthy")
	}

	if cfg.Watch {
		w, err := watcher.New(cfg.ModelPath, svc, log)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		go w.Run(baseCtx)
	}

	httpapi.SetLogger(log)
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, cfg.CORSMethods, cfg.CORSHeaders)
	mux := httpapi.NewMux(svc)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("model_path", cfg.ModelPath).Str("env", cfg.Environment).Msg("inferd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	if cfg.Environment == "development" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return log
}
