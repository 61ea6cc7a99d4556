/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"
	"io"
	"log/slog"

	"dirpx.dev/redbox/internal/config"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logFormat  string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "redboxd",
		Short: "Exception report router and terminal redbox",
		Long: `redboxd decodes exception reports sent by a scripted runtime and
routes them to a terminal redbox. Reports arrive as JSON over HTTP or as
google.protobuf.ListValue over gRPC.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "YAML config file (defaults apply when missing)")
	cmd.PersistentFlags().StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(newServeCmd(f), newDecodeCmd(f), newVersionCmd())
	return cmd
}

// load reads the config file and applies the shared flags.
func (f *rootFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, nil
}

// newLogger builds the process logger: JSON for production, text otherwise.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text", "":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return slog.New(h), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the redboxd version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "redboxd version %s\n", version)
			return nil
		},
	}
}
