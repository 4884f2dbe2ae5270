package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// maxBatchSize caps how many catalog requests one pipeline cycle may pull.
const maxBatchSize = 1000

// Config holds all service settings.
type Config struct {
	KafkaBrokers     []string      `koanf:"kafka_brokers"`
	KafkaSourceTopic string        `koanf:"kafka_source_topic"`
	KafkaSinkTopic   string        `koanf:"kafka_sink_topic"`
	KafkaGroupID     string        `koanf:"kafka_group_id"`
	HTTPAddr         string        `koanf:"http_addr"`
	LogLevel         string        `koanf:"log_level"`
	LogFormat        string        `koanf:"log_format"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`

	BatchSize          int           `koanf:"batch_size"`
	BatchFlushInterval time.Duration `koanf:"batch_flush_interval"`

	// Sampling configuration.
	DefaultTargetYears int  `koanf:"default_target_years"`
	ApplyCorrection    bool `koanf:"apply_correction"`
	RecordCacheSize    int  `koanf:"record_cache_size"`
	MaxCatalogEvents   int  `koanf:"max_catalog_events"`
	MaxTargetYears     int  `koanf:"max_target_years"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		KafkaBrokers:     []string{"localhost:9092"},
		KafkaSourceTopic: "event-catalogs",
		KafkaSinkTopic:   "impact-yearsets",
		KafkaGroupID:     "impact-yearset-service",
		HTTPAddr:         ":8080",
		LogLevel:         "info",
		LogFormat:        "json",
		ShutdownTimeout:  10 * time.Second,

		BatchSize:          50,
		BatchFlushInterval: 500 * time.Millisecond,

		DefaultTargetYears: 1000,
		ApplyCorrection:    true,
		RecordCacheSize:    256,
		MaxCatalogEvents:   100000,
		MaxTargetYears:     100000,
	}
}

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if YEARSET_CONFIG is set
//  3. env (prefix YEARSET_)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("YEARSET_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Map env keys like YEARSET_BATCH_SIZE -> batch_size, matching the
	// koanf tags on the struct.
	envProvider := env.Provider("YEARSET_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "yearset_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy of the defaults
	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.KafkaBrokers) == 0 {
		return errors.New("kafka_brokers must not be empty")
	}
	if c.KafkaSourceTopic == "" {
		return errors.New("kafka_source_topic must not be empty")
	}
	if c.KafkaSinkTopic == "" {
		return errors.New("kafka_sink_topic must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	if c.BatchSize < 1 || c.BatchSize > maxBatchSize {
		return fmt.Errorf("batch_size must be between 1 and %d", maxBatchSize)
	}
	if c.BatchFlushInterval <= 0 {
		return errors.New("batch_flush_interval must be positive")
	}
	if c.DefaultTargetYears < 1 {
		return errors.New("default_target_years must be positive")
	}
	if c.MaxTargetYears < c.DefaultTargetYears {
		return errors.New("max_target_years must be at least default_target_years")
	}
	if c.MaxCatalogEvents < 1 {
		return errors.New("max_catalog_events must be positive")
	}
	if c.RecordCacheSize < 1 {
		return errors.New("record_cache_size must be positive")
	}
	return nil
}
