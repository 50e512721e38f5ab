package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "log-level",
		Usage:   "log verbosity: debug, info, warn or error",
		Value:   "warn",
		EnvVars: []string{"ASCBTREE_LOG_LEVEL"},
	},
	&cli.StringFlag{
		Name:    "log-format",
		Usage:   "log output format: text or json",
		Value:   "text",
		EnvVars: []string{"ASCBTREE_LOG_FORMAT"},
	},
	&cli.StringFlag{
		Name:    "keys",
		Usage:   "key type: int or string",
		Value:   "int",
		EnvVars: []string{"ASCBTREE_KEYS"},
	},
	&cli.BoolFlag{
		Name:    "no-color",
		Usage:   "disable coloured output",
		EnvVars: []string{"ASCBTREE_NO_COLOR"},
	},
}

type config struct {
	logLevel  slog.Level
	logFormat string
	keys      string
	noColor   bool
}

func configFromContext(cctx *cli.Context) (*config, error) {
	cfg := &config{
		logFormat: strings.ToLower(cctx.String("log-format")),
		keys:      strings.ToLower(cctx.String("keys")),
		noColor:   cctx.Bool("no-color"),
	}
	if err := cfg.logLevel.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
		return nil, fmt.Errorf("log-level: %w", err)
	}
	switch cfg.keys {
	case "int", "string":
	default:
		return nil, fmt.Errorf("unknown key type %q (want int or string)", cfg.keys)
	}
	return cfg, nil
}

func (cfg *config) logger() (*slog.Logger, error) {
	hopts := slog.HandlerOptions{Level: cfg.logLevel}
	var handler slog.Handler
	switch cfg.logFormat {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, &hopts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, &hopts)
	default:
		return nil, fmt.Errorf("unknown log format: %#v", cfg.logFormat)
	}
	return slog.New(handler), nil
}

// setup runs before any command: it installs the default logger and the colour switch.
func setup(cctx *cli.Context) error {
	cfg, err := configFromContext(cctx)
	if err != nil {
		return err
	}
	logger, err := cfg.logger()
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	if cfg.noColor {
		color.NoColor = true
	}
	cctx.App.Metadata["config"] = cfg
	return nil
}

func getConfig(cctx *cli.Context) *config {
	return cctx.App.Metadata["config"].(*config)
}
