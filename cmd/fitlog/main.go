package main

import (
	"errors"
	"os"
	"time"

	"example.com/fitlog/internal/cli"
	"example.com/fitlog/internal/config"
	"example.com/fitlog/internal/logging"
	"example.com/fitlog/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("fitlog: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		config.Exitf("fitlog: %v", err)
	}

	runErr := cli.Run(os.Args[1:], cli.Env{
		Config: cfg,
		Out:    os.Stdout,
		Err:    os.Stderr,
		In:     os.Stdin,
		Logger: logger,
		Now:    time.Now,
	})

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn().Err(err).Str("path", cfg.MetricsTextfile).Msg("write metrics textfile")
		}
	}

	if runErr != nil {
		if errors.Is(runErr, cli.ErrUsage) {
			config.Exitf("fitlog: %v (run fitlog -h for help)", runErr)
		}
		config.Exitf("fitlog: %v", runErr)
	}
}
