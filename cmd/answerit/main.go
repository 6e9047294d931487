// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/answerit"
	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/ai/ollama"
	"github.com/poiesic/answerit/config"
	"github.com/poiesic/answerit/router"
	"github.com/poiesic/answerit/server"
	badgerstore "github.com/poiesic/answerit/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "answerit",
		Usage: "University FAQ answering service with confidence routing and feedback blocking",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (overrides the config file)",
					},
					&cli.StringFlag{
						Name:    "dataset",
						Aliases: []string{"D"},
						Usage:   "Directory with the JSON dataset files (overrides the config file)",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the BadgerDB feedback directory (overrides the config file)",
					},
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "Disable the generative backend",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question and exit",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dataset",
						Aliases: []string{"D"},
						Usage:   "Directory with the JSON dataset files (overrides the config file)",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the BadgerDB feedback directory (overrides the config file)",
					},
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "Disable the generative backend",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print corpus and feedback counters",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dataset",
						Aliases: []string{"D"},
						Usage:   "Directory with the JSON dataset files (overrides the config file)",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the BadgerDB feedback directory (overrides the config file)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig resolves the effective configuration from the config file and
// command-line overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if addr := c.String("addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}
	if dataset := c.String("dataset"); dataset != "" {
		cfg.Dataset.Dir = dataset
	}
	if db := c.String("db"); db != "" {
		cfg.Storage.Path = db
	}
	if c.Bool("offline") {
		cfg.Ollama.Enabled = false
	}
	return cfg, nil
}

// buildEngine wires storage, corpus and the generative backend from cfg.
// The returned cleanup closes everything in reverse order.
func buildEngine(cfg config.Config) (*answerit.Engine, func(), error) {
	backend, err := badgerstore.OpenBackend(cfg.Storage.Path, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open feedback database: %w", err)
	}

	repo, err := badgerstore.NewFeedbackRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create feedback repository: %w", err)
	}

	opts := []answerit.EngineOption{
		answerit.WithDataDir(cfg.Dataset.Dir),
		answerit.WithThresholds(router.Thresholds{
			High:   cfg.Matching.HighThreshold,
			Medium: cfg.Matching.MediumThreshold,
			Low:    cfg.Matching.LowThreshold,
		}),
		answerit.WithBlockSimilarity(cfg.Matching.BlockSimilarity),
		answerit.WithRetryTemperature(cfg.Ollama.RetryTemperature),
	}

	if cfg.Ollama.Enabled {
		generator, err := ollama.NewGenerator(ai.NewConfig(
			ai.WithHost(cfg.Ollama.Host),
			ai.WithModel(cfg.Ollama.Model),
			ai.WithTemperature(cfg.Ollama.Temperature),
			ai.WithRetryTemperature(cfg.Ollama.RetryTemperature),
			ai.WithTopP(cfg.Ollama.TopP),
			ai.WithMaxTokens(cfg.Ollama.MaxTokens),
			ai.WithTimeout(cfg.OllamaTimeout()),
		))
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, nil, fmt.Errorf("failed to create generator: %w", err)
		}
		opts = append(opts, answerit.WithGenerator(generator))
	}

	engine, err := answerit.NewEngine(repo, opts...)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, nil, fmt.Errorf("failed to build engine: %w", err)
	}

	cleanup := func() {
		if err := engine.Close(); err != nil {
			slog.Error("error closing engine", "err", err)
		}
		if err := repo.Close(); err != nil {
			slog.Error("error closing repository", "err", err)
		}
		if err := backend.Close(); err != nil {
			slog.Error("error closing backend", "err", err)
		}
	}
	return engine, cleanup, nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	engine, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(engine, server.WithStats(func() any {
		return engine.Stats()
	}))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.HTTPReadTimeout(),
		WriteTimeout: cfg.HTTPWriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.HTTP.Addr, "generative", cfg.Ollama.Enabled)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	engine, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := engine.Answer(context.Background(), question)
	if err != nil {
		return err
	}

	fmt.Println(resp.Answer)
	fmt.Fprintf(os.Stderr, "confidence=%.2f method=%s\n", resp.Confidence, resp.Method)
	return nil
}

func statsCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	engine, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return json.NewEncoder(os.Stdout).Encode(engine.Stats())
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
