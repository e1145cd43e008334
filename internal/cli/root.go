// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/orbital/internal/config"
	"github.com/tomtom215/orbital/internal/logging"
)

// options holds the flags shared by every subcommand.
type options struct {
	version    string
	configPath string
	maxRetries int
	logLevel   string

	// Set by PersistentPreRunE.
	cfg *config.Config
}

// NewRootCmd builds the orbital command tree. Payloads go to out; logs go to
// stderr.
func NewRootCmd(version string, out io.Writer) *cobra.Command {
	opts := &options{version: version}

	root := &cobra.Command{
		Use:           "orbital",
		Short:         "Space exploration data gateway",
		Long:          "Orbital serves astronauts, launches, rockets, space stations, APOD and Mars rover photos\nfrom TheSpaceDevs and NASA with retries, caching and rate limit handling.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.SortFlags = false
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (default: search ./config.yaml, /etc/orbital)")
	flags.IntVar(&opts.maxRetries, "max-retries", 0, "attempts per upstream call, overrides FETCH_MAX_RETRIES")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level, overrides LOG_LEVEL")

	root.AddCommand(newServeCmd(opts))
	for _, cmd := range newDataCmds(opts) {
		root.AddCommand(cmd)
	}
	return root
}

// load reads configuration and applies flag overrides.
func (o *options) load() error {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return err
	}

	if o.maxRetries != 0 {
		if o.maxRetries < 1 {
			return fmt.Errorf("--max-retries must be at least 1, got %d", o.maxRetries)
		}
		cfg.Fetch.MaxRetries = o.maxRetries
	}
	if o.logLevel != "" {
		if !logging.ValidLevel(o.logLevel) {
			return fmt.Errorf("--log-level %q is not a valid level", o.logLevel)
		}
		cfg.Logging.Level = o.logLevel
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	o.cfg = cfg
	return nil
}
