package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/semgraph/pkg/analysis"
	"github.com/dd0wney/semgraph/pkg/distance"
	"github.com/dd0wney/semgraph/pkg/ingest"
	"github.com/dd0wney/semgraph/pkg/validation"
)

// ErrInvalidConfig is returned when a config file fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the file-level configuration of the semgraph CLI.
type Config struct {
	LogLevel    string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	MetricsFile string `yaml:"metrics_file"`
	ArchiveFile string `yaml:"archive_file"`

	Ingest   IngestConfig     `yaml:"ingest"`
	Analysis analysis.Options `yaml:"analysis"`
}

// IngestConfig configures fact ingestion and the distance weights.
type IngestConfig struct {
	MaxValueWords  int    `yaml:"max_value_words"`
	CentralEntity  string `yaml:"central_entity"`
	PrimarySection string `yaml:"primary_section"`

	GroupWeight   float64 `yaml:"group_weight" validate:"gt=0"`
	TopicWeight   float64 `yaml:"topic_weight" validate:"gt=0"`
	SectionWeight float64 `yaml:"section_weight" validate:"gt=0"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	d := distance.DefaultOptions()
	return &Config{
		LogLevel: "info",
		Ingest: IngestConfig{
			MaxValueWords: ingest.DefaultMaxValueWords,
			GroupWeight:   d.GroupWeight,
			TopicWeight:   d.TopicWeight,
			SectionWeight: d.SectionWeight,
		},
		Analysis: analysis.DefaultOptions(),
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults: keys missing from data keep their
// default values. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section of the config.
func (c *Config) Validate() error {
	err := validation.NewConfigValidator("config").
		Struct(c).
		NonNegative("MaxValueWords", c.Ingest.MaxValueWords).
		Custom("analysis", c.Analysis.Validate).
		Validate()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// IngestOptions converts the ingest section for the adapter.
func (c *Config) IngestOptions() ingest.Options {
	return ingest.Options{
		MaxValueWords:  c.Ingest.MaxValueWords,
		CentralEntity:  c.Ingest.CentralEntity,
		PrimarySection: c.Ingest.PrimarySection,
		Distance: distance.Options{
			GroupWeight:   c.Ingest.GroupWeight,
			TopicWeight:   c.Ingest.TopicWeight,
			SectionWeight: c.Ingest.SectionWeight,
			Workers:       c.Analysis.Workers,
		},
	}
}
