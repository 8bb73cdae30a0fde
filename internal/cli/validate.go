package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/JanKosminski/DuplicateCrawler/internal/platform"
	"github.com/JanKosminski/DuplicateCrawler/pkg/config"
	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
	"github.com/JanKosminski/DuplicateCrawler/pkg/scan"
)

// validateScanArgs resolves and validates the scan roots. Configuration
// faults are fatal before any scanning begins.
func validateScanArgs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var roots []string

	for _, arg := range args {
		abs, err := platform.ResolveRoot(arg)
		if err != nil {
			return nil, err
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		roots = append(roots, abs)
	}

	return roots, nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if scanFlags.Mode != "" {
		cfg.Scan.Mode = models.MatchMode(scanFlags.Mode)
	}
	if scanFlags.ThresholdSet {
		cfg.Scan.Threshold = scanFlags.Threshold
	}
	if scanFlags.MinContent > 0 {
		cfg.Scan.MinContentLength = scanFlags.MinContent
	}
	if scanFlags.VectorThreshold > 0 {
		cfg.Scan.VectorOpThreshold = scanFlags.VectorThreshold
	}
	if scanFlags.StopWords {
		cfg.Scan.StopWords = true
	}

	if scanFlags.Workers > 0 {
		cfg.Performance.MaxWorkers = scanFlags.Workers
	}
	if len(scanFlags.Exclude) > 0 {
		cfg.Exclude = scanFlags.Exclude
	}

	if scanFlags.Output != "" {
		cfg.Output.Format = scanFlags.Output
	}
	if scanFlags.Report != "" {
		cfg.Output.Report = scanFlags.Report
	}
	if globalFlags.Quiet {
		cfg.Output.Quiet = true
	}
	if globalFlags.Verbose && cfg.Logging.Level != "debug" {
		cfg.Logging.Level = "debug"
	}
}

// createScanOptions builds the scan options from the merged configuration
func createScanOptions(cfg *config.Config, roots []string) (scan.Options, error) {
	bandwidth, err := parseBandwidth(scanFlags.Bandwidth)
	if err != nil {
		return scan.Options{}, err
	}
	if bandwidth == 0 {
		bandwidth = cfg.Performance.BandwidthLimit
	}

	return scan.Options{
		OperationID:       uuid.New().String(),
		Roots:             roots,
		Mode:              cfg.Scan.Mode,
		Threshold:         cfg.Scan.Threshold,
		MinContentLength:  cfg.Scan.MinContentLength,
		VectorOpThreshold: cfg.Scan.VectorOpThreshold,
		StripStopWords:    cfg.Scan.StopWords,
		ExcludePatterns:   cfg.Exclude,
		Workers:           cfg.Performance.MaxWorkers,
		BlockSize:         cfg.Performance.BufferSize,
		BandwidthLimit:    bandwidth,
	}, nil
}

// parseBandwidth parses a human bandwidth limit like "500K", "10M" or "1G"
// into bytes per second. An empty string means unlimited.
func parseBandwidth(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	multiplier := int64(1)
	upper := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case strings.HasSuffix(upper, "K"):
		multiplier = 1024
		upper = strings.TrimSuffix(upper, "K")
	case strings.HasSuffix(upper, "M"):
		multiplier = 1024 * 1024
		upper = strings.TrimSuffix(upper, "M")
	case strings.HasSuffix(upper, "G"):
		multiplier = 1024 * 1024 * 1024
		upper = strings.TrimSuffix(upper, "G")
	}

	value, err := strconv.ParseInt(upper, 10, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid bandwidth limit: %s", s)
	}

	return value * multiplier, nil
}
