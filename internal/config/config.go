// Copyright 2025 go-highway Authors
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

// Package config holds the benchmark harness configuration.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by cmd/hdcbench)
//  2. Environment variables (HDC_*)
//  3. Config file (YAML)
//  4. Built-in defaults
//
// Environment variables:
//   - HDC_DIMS=10000, HDC_ALPHABET=256, HDC_CLASSES=16, HDC_SEED=1
//   - HDC_INPUTS=100, HDC_INPUT_LENGTH=784
//   - HDC_WORKERS=0 (GOMAXPROCS), HDC_MAX_CLASSES=16
//   - HDC_STRATEGIES="sequential,parallel,fused"
//   - HDC_METRICS_FILE="" (no export)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-hdc/hdc/contrib/infer"
)

// Config is the complete harness configuration.
type Config struct {
	Model    ModelConfig    `yaml:"model"`
	Workload WorkloadConfig `yaml:"workload"`
	Runtime  RuntimeConfig  `yaml:"runtime"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ModelConfig shapes the synthetic basis and prototype tables.
type ModelConfig struct {
	Dims     int    `yaml:"dims"`
	Alphabet int    `yaml:"alphabet"`
	Classes  int    `yaml:"classes"`
	Seed     uint64 `yaml:"seed"`
}

// WorkloadConfig shapes the synthetic input sequences.
type WorkloadConfig struct {
	Inputs      int `yaml:"inputs"`
	InputLength int `yaml:"input_length"`
}

// RuntimeConfig selects pipelines and parallelism.
type RuntimeConfig struct {
	// Workers is the pool size; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// MaxClasses bounds the fused pipeline's per-worker buffers.
	MaxClasses int `yaml:"max_classes"`

	// Strategies lists the pipelines to run, by infer.ParseStrategy name.
	Strategies []string `yaml:"strategies"`
}

// MetricsConfig controls prometheus text export.
type MetricsConfig struct {
	// File, if set, receives the metrics registry after a run.
	File string `yaml:"file"`
}

// LoadDefaults returns the built-in defaults: 100 inputs of 784 symbols
// over a 256-symbol alphabet, D=10000 and 16 classes.
func LoadDefaults() *Config {
	return &Config{
		Model: ModelConfig{
			Dims:     10000,
			Alphabet: 256,
			Classes:  16,
			Seed:     1,
		},
		Workload: WorkloadConfig{
			Inputs:      100,
			InputLength: 784,
		},
		Runtime: RuntimeConfig{
			MaxClasses: infer.DefaultMaxClasses,
			Strategies: []string{"sequential", "parallel", "fused"},
		},
	}
}

// LoadFromEnv returns the defaults overridden by HDC_* variables.
func LoadFromEnv() *Config {
	config := LoadDefaults()
	applyEnvVars(config)
	return config
}

// LoadFromFile loads defaults, overlays the YAML file at configPath and then
// the environment. A missing file is not an error. An empty path skips the
// file.
func LoadFromFile(configPath string) (*Config, error) {
	config := LoadDefaults()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	applyEnvVars(config)
	return config, nil
}

func applyEnvVars(config *Config) {
	config.Model.Dims = getEnvInt("HDC_DIMS", config.Model.Dims)
	config.Model.Alphabet = getEnvInt("HDC_ALPHABET", config.Model.Alphabet)
	config.Model.Classes = getEnvInt("HDC_CLASSES", config.Model.Classes)
	config.Model.Seed = getEnvUint64("HDC_SEED", config.Model.Seed)

	config.Workload.Inputs = getEnvInt("HDC_INPUTS", config.Workload.Inputs)
	config.Workload.InputLength = getEnvInt("HDC_INPUT_LENGTH", config.Workload.InputLength)

	config.Runtime.Workers = getEnvInt("HDC_WORKERS", config.Runtime.Workers)
	config.Runtime.MaxClasses = getEnvInt("HDC_MAX_CLASSES", config.Runtime.MaxClasses)
	config.Runtime.Strategies = getEnvStringSlice("HDC_STRATEGIES", config.Runtime.Strategies)

	config.Metrics.File = getEnv("HDC_METRICS_FILE", config.Metrics.File)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Model.Dims <= 0 {
		return fmt.Errorf("invalid dims: %d", c.Model.Dims)
	}
	if c.Model.Alphabet <= 0 {
		return fmt.Errorf("invalid alphabet size: %d", c.Model.Alphabet)
	}
	if c.Model.Classes <= 0 {
		return fmt.Errorf("invalid class count: %d", c.Model.Classes)
	}
	if c.Workload.Inputs < 0 {
		return fmt.Errorf("invalid input count: %d", c.Workload.Inputs)
	}
	if c.Workload.InputLength < 0 {
		return fmt.Errorf("invalid input length: %d", c.Workload.InputLength)
	}
	if c.Runtime.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Runtime.Workers)
	}
	if c.Runtime.MaxClasses <= 0 {
		return fmt.Errorf("invalid max classes: %d", c.Runtime.MaxClasses)
	}
	if len(c.Runtime.Strategies) == 0 {
		return fmt.Errorf("no strategies selected")
	}
	if _, err := c.ParseStrategies(); err != nil {
		return err
	}
	return nil
}

// ParseStrategies resolves Runtime.Strategies, dropping duplicates.
func (c *Config) ParseStrategies() ([]infer.Strategy, error) {
	seen := make(map[infer.Strategy]bool, len(c.Runtime.Strategies))
	out := make([]infer.Strategy, 0, len(c.Runtime.Strategies))
	for _, name := range c.Runtime.Strategies {
		s, err := infer.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, nil
}

// String returns a one-line summary for logs.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{D: %d, A: %d, C: %d, Inputs: %dx%d, Workers: %d, Strategies: %s}",
		c.Model.Dims, c.Model.Alphabet, c.Model.Classes,
		c.Workload.Inputs, c.Workload.InputLength,
		c.Runtime.Workers, strings.Join(c.Runtime.Strategies, ","),
	)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		if u, err := strconv.ParseUint(val, 10, 64); err == nil {
			return u
		}
	}
	return defaultVal
}

func getEnvStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		parts := strings.Split(val, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultVal
}
