package config

import (
	"github.com/JanKosminski/DuplicateCrawler/pkg/classify"
	"github.com/JanKosminski/DuplicateCrawler/pkg/extract"
	"github.com/JanKosminski/DuplicateCrawler/pkg/match"
	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Scan        ScanConfig        `yaml:"scan"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Exclude     []string          `yaml:"exclude"`
}

// ScanConfig holds detection-related settings
type ScanConfig struct {
	Mode              models.MatchMode `yaml:"mode"`
	Threshold         float64          `yaml:"threshold"`
	MinContentLength  int              `yaml:"min_content_length"`
	VectorOpThreshold int              `yaml:"vector_op_threshold"`
	StopWords         bool             `yaml:"stop_words"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	MaxWorkers     int   `yaml:"max_workers"`
	BufferSize     int   `yaml:"buffer_size"`
	BandwidthLimit int64 `yaml:"bandwidth_limit"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format string `yaml:"format"` // "human", "progress" or "json"
	Report string `yaml:"report"` // CSV report path (empty = no report file)
	Quiet  bool   `yaml:"quiet"`  // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = stderr)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Mode:              models.ModeHybrid,
			Threshold:         match.DefaultThreshold,
			MinContentLength:  classify.DefaultMinContentLength,
			VectorOpThreshold: extract.DefaultVectorOpThreshold,
			StopWords:         false,
		},
		Performance: PerformanceConfig{
			MaxWorkers:     4,
			BufferSize:     match.DefaultBlockSize,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format: "progress",
			Report: "",
			Quiet:  false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "json",
			Level:   "info",
			File:    "",
		},
		Exclude: []string{
			"*.tmp",
			".git/",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !c.Scan.Mode.Valid() {
		return &models.ValidationError{
			Field:   "scan.mode",
			Message: "must be 'exact', 'hybrid' or 'text'",
		}
	}

	if c.Scan.Threshold < 0 || c.Scan.Threshold > 1 {
		return &models.ValidationError{
			Field:   "scan.threshold",
			Message: "must be between 0.0 and 1.0",
		}
	}

	if c.Scan.MinContentLength < 1 {
		return &models.ValidationError{
			Field:   "scan.min_content_length",
			Message: "must be at least 1",
		}
	}

	if c.Scan.VectorOpThreshold < 1 {
		return &models.ValidationError{
			Field:   "scan.vector_op_threshold",
			Message: "must be at least 1",
		}
	}

	if c.Performance.MaxWorkers < 1 {
		return &models.ValidationError{
			Field:   "performance.max_workers",
			Message: "must be at least 1",
		}
	}

	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	validFormats := map[string]bool{"human": true, "progress": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human', 'progress' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
