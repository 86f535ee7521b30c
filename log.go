package main

import (
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// logEnv captures the debug-logging environment.
type logEnv struct {
	Debug   bool   `env:"DEBUG"`
	LogFile string `env:"PISAY_LOGFILE" envDefault:"pisay.log"`
}

// setupLog discards logs unless DEBUG is set, in which case debug-level
// output goes to a log file. Returns a closer for the file.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)

	cfg, err := env.ParseAs[logEnv]()
	if err != nil {
		return nil, fmt.Errorf("error parsing log environment: %w", err)
	}
	if !cfg.Debug {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	return f.Close, nil
}
