// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalOptions holds persistent flags and the loaded config shared by subcommands.
type globalOptions struct {
	config     *Config
	configPath string
	logLevel   string
	version    bool
}

// newRootCmd builds the aurarc command tree.
func newRootCmd() *cobra.Command {
	g := &globalOptions{config: &Config{}}

	root := &cobra.Command{
		Use:           "aurarc",
		Short:         "Inspect BioWare Aurora resource containers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !g.version {
				return errors.New("expected a command")
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "aurarc version %s\n", version)
			return err
		},
	}

	addGlobalFlags(root.PersistentFlags(), g)
	root.AddCommand(
		newListCmd(g),
		newExtractCmd(g),
		newCursorsCmd(g),
	)

	return root
}

// addGlobalFlags registers persistent flags on fs.
func addGlobalFlags(fs *pflag.FlagSet, g *globalOptions) {
	fs.StringVarP(&g.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVar(&g.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	fs.BoolVar(&g.version, "version", false, "show version and exit")
}

// setup loads config, applies flag overrides and installs the logger into the command context.
func (g *globalOptions) setup(cmd *cobra.Command) error {
	cfg, err := ReadConfig(g.configPath)
	if err != nil {
		return err
	}
	g.config = cfg

	if cmd.Flags().Changed("log-level") {
		g.config.LogLevel = g.logLevel
	}

	logger, err := newLogger(cmd.ErrOrStderr(), g.config.LogLevel)
	if err != nil {
		return err
	}

	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// newLogger creates a console logger on w at levelName (default info).
func newLogger(w io.Writer, levelName string) (zerolog.Logger, error) {
	if levelName == "" {
		levelName = zerolog.InfoLevel.String()
	}

	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log_level: %w", err)
	}

	if w == nil {
		w = os.Stderr
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
