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

// Package config loads the redboxd daemon configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"dirpx.dev/redbox/decoder"
	"dirpx.dev/redbox/router"
	"gopkg.in/yaml.v3"
)

// Config holds the redboxd configuration.
type Config struct {
	// HTTPAddr is the listen address of the HTTP bridge. Empty disables it.
	HTTPAddr string `yaml:"http_addr"`
	// GRPCAddr is the listen address of the gRPC service. Empty disables it.
	GRPCAddr string `yaml:"grpc_addr"`

	DevSupport    bool   `yaml:"dev_support"`
	FailurePolicy string `yaml:"failure_policy"`
	StrictFrames  bool   `yaml:"strict_frames"`
	// MaxFrames limits callstack length. Zero means no limit.
	MaxFrames    int   `yaml:"max_frames"`
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	LogFormat string `yaml:"log_format"` // "text" or "json"
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		HTTPAddr:      "127.0.0.1:8081",
		GRPCAddr:      "127.0.0.1:8082",
		DevSupport:    true,
		FailurePolicy: router.FailureReturn.String(),
		MaxBodyBytes:  1 << 20,
		LogFormat:     "text",
		LogLevel:      "info",
	}
}

// Load reads the configuration from the given YAML file path.
// If the file does not exist, it returns Default() with no error. Unknown
// keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTPAddr == "" && c.GRPCAddr == "" {
		errs = append(errs, errors.New("at least one of http_addr and grpc_addr is required"))
	}
	if _, ok := router.ParseFailurePolicy(c.FailurePolicy); !ok {
		errs = append(errs, fmt.Errorf("failure_policy %q: want return or report_soft", c.FailurePolicy))
	}
	if c.MaxFrames < 0 {
		errs = append(errs, fmt.Errorf("max_frames %d: must not be negative", c.MaxFrames))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_body_bytes %d: must be positive", c.MaxBodyBytes))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format %q: want text or json", c.LogFormat))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Decoder builds the payload decoder described by the configuration.
func (c *Config) Decoder() *decoder.Decoder {
	var opts []decoder.Option
	if c.StrictFrames {
		opts = append(opts, decoder.WithStrictFrames())
	}
	if c.MaxFrames > 0 {
		opts = append(opts, decoder.WithMaxFrames(c.MaxFrames))
	}
	return decoder.New(opts...)
}

// RouterOptions returns the router options described by the configuration.
func (c *Config) RouterOptions(logger *slog.Logger) []router.Option {
	policy, _ := router.ParseFailurePolicy(c.FailurePolicy)
	return []router.Option{
		router.WithLogger(logger),
		router.WithDecoder(c.Decoder()),
		router.WithFailurePolicy(policy),
	}
}
