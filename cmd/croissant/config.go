package main

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/reoring/croissant/checksum"
	"github.com/reoring/croissant/internal/env"
	"github.com/reoring/croissant/source"
	"github.com/reoring/croissant/validate"
)

// config holds the process-wide settings read from the environment.
type config struct {
	Lang       string
	JSONDriver string
	Deep       bool
	ChunkSize  int
	MaxDepth   int
	LogLevel   slog.Level
}

func loadConfig() (config, error) {
	cfg := config{
		Lang:       env.String("CROISSANT_LANG", "en"),
		JSONDriver: env.String("CROISSANT_JSON_DRIVER", source.GoJSON),
	}
	var errs []error
	var err error
	if cfg.Deep, err = env.Bool("CROISSANT_DEEP_VALIDATION", true); err != nil {
		errs = append(errs, err)
	}
	if cfg.ChunkSize, err = env.Int("CROISSANT_CHUNK_SIZE", checksum.DefaultChunkSize); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxDepth, err = env.Int("CROISSANT_MAX_DEPTH", validate.DefaultMaxDepth); err != nil {
		errs = append(errs, err)
	}
	if cfg.LogLevel, err = parseLevel(env.String("CROISSANT_LOG_LEVEL", "info")); err != nil {
		errs = append(errs, err)
	}
	return cfg, errors.Join(errs...)
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(strings.ToUpper(s)))
	if err != nil {
		return slog.LevelInfo, errors.New("CROISSANT_LOG_LEVEL: " + err.Error())
	}
	return l, nil
}
