/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/skald/mode"
)

// Config covers process level configuration read from environment variables,
// optionally overlaid with a YAML file. Host applications embedding the
// library can also populate it directly.
type Config struct {
	Environment string `yaml:"environment"`

	// Playlist generation defaults
	Mode                string `yaml:"mode"`
	MaxRecordings       int    `yaml:"max_recordings"`
	MaxArtistOccurrence int    `yaml:"max_artist_occurrence"`
	MaxSimilarArtists   int    `yaml:"max_similar_artists"`
	CandidatesPerTerm   int    `yaml:"candidates_per_term"`

	// Local index (sqlite) configuration
	IndexPath string `yaml:"index_path"`

	// Remote service configuration
	ListenBrainzToken string `yaml:"listenbrainz_token"`

	// Cache configuration
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Tracing configuration
	TracingEnabled    bool    `yaml:"tracing_enabled"`
	OTLPEndpoint      string  `yaml:"otlp_endpoint"`
	TracingSampleRate float64 `yaml:"tracing_sample_rate"`
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:         getEnv("SKALD_ENV", "development"),
		Mode:                getEnv("SKALD_MODE", "easy"),
		MaxRecordings:       getEnvInt("SKALD_MAX_RECORDINGS", 50),
		MaxArtistOccurrence: getEnvInt("SKALD_MAX_ARTIST_OCCURRENCE", 2),
		MaxSimilarArtists:   getEnvInt("SKALD_MAX_SIMILAR_ARTISTS", 8),
		CandidatesPerTerm:   getEnvInt("SKALD_CANDIDATES_PER_TERM", 100),
		IndexPath:           getEnv("SKALD_INDEX_PATH", ""),
		ListenBrainzToken:   getEnv("SKALD_LISTENBRAINZ_TOKEN", ""),
		RedisAddr:           getEnv("SKALD_REDIS_ADDR", ""),
		RedisPassword:       getEnv("SKALD_REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("SKALD_REDIS_DB", 0),
		TracingEnabled:      getEnvBool("SKALD_TRACING_ENABLED", false),
		OTLPEndpoint:        getEnv("SKALD_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate:   getEnvFloat("SKALD_TRACING_SAMPLE_RATE", 1.0),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads environment configuration and overlays the given YAML file
// on top of it. Values present in the file win over environment values.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := mode.Parse(c.Mode); err != nil {
		return fmt.Errorf("SKALD_MODE: %w", err)
	}
	if c.MaxRecordings <= 0 {
		return fmt.Errorf("SKALD_MAX_RECORDINGS must be positive, got %d", c.MaxRecordings)
	}
	if c.MaxArtistOccurrence <= 0 {
		return fmt.Errorf("SKALD_MAX_ARTIST_OCCURRENCE must be positive, got %d", c.MaxArtistOccurrence)
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("SKALD_TRACING_SAMPLE_RATE must be in [0,1], got %g", c.TracingSampleRate)
	}
	return nil
}

// GenerationMode returns the parsed default mode. Call after validation.
func (c *Config) GenerationMode() mode.Mode {
	m, _ := mode.Parse(c.Mode)
	return m
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
