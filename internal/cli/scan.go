package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JanKosminski/DuplicateCrawler/pkg/config"
	"github.com/JanKosminski/DuplicateCrawler/pkg/logging"
	"github.com/JanKosminski/DuplicateCrawler/pkg/output"
	"github.com/JanKosminski/DuplicateCrawler/pkg/scan"
)

// ScanFlags holds scan command flags
type ScanFlags struct {
	Mode      string
	Threshold float64
	// ThresholdSet distinguishes an explicit -t 0 from the flag's zero
	// value; 0.0 is a legal threshold
	ThresholdSet    bool
	MinContent      int
	VectorThreshold int
	StopWords       bool

	Report    string
	Output    string
	Exclude   []string
	Workers   int
	Bandwidth string

	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var scanFlags ScanFlags

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan ROOT...",
		Short: "Scan directories for duplicate documents",
		Long: `Scan one or more directory roots for exact and near-duplicate documents.
Text-bearing files (txt, pdf, docx) are compared by extracted content so the
same prose in different containers is detected; everything else is compared
by raw bytes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringVarP(&scanFlags.Mode, "mode", "m", "", "match mode: exact, hybrid, text (default: hybrid)")
	cmd.Flags().Float64VarP(&scanFlags.Threshold, "threshold", "t", 0, "similarity threshold in [0,1], pairs must score strictly above it (default: 0.90)")
	cmd.Flags().IntVar(&scanFlags.MinContent, "min-content", 0, "minimum normalized text length for content matching (default: 50)")
	cmd.Flags().IntVar(&scanFlags.VectorThreshold, "vector-threshold", 0, "first-page paint operator count above which a PDF is treated as a drawing (default: 500)")
	cmd.Flags().BoolVar(&scanFlags.StopWords, "stop-words", false, "strip common English words before similarity scoring")

	cmd.Flags().StringVarP(&scanFlags.Report, "report", "r", "", "write CSV report to file")
	cmd.Flags().StringVarP(&scanFlags.Output, "output", "o", "", "output format: human, progress, json")
	cmd.Flags().StringSliceVar(&scanFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().IntVarP(&scanFlags.Workers, "workers", "w", 0, "number of parallel workers (default: 4)")
	cmd.Flags().StringVarP(&scanFlags.Bandwidth, "bandwidth", "b", "", "read bandwidth limit (e.g. \"10M\", \"1G\")")

	cmd.Flags().StringVar(&scanFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&scanFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&scanFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Interrupt cancels the scan; a partial report is still produced
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	roots, err := validateScanArgs(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	scanFlags.ThresholdSet = cmd.Flags().Changed("threshold")
	applyFlagsToConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := createScanOptions(cfg, roots)
	if err != nil {
		return err
	}

	var formatter output.Formatter
	if !cfg.Output.Quiet {
		switch cfg.Output.Format {
		case "json":
			formatter = output.NewJSONFormatter()
		case "human":
			formatter = output.NewHumanFormatter()
		default:
			formatter = output.NewProgressFormatter()
		}
	}

	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	session := scan.NewSession(opts, formatter, logger)

	report, err := session.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if reportPath := cfg.Output.Report; reportPath != "" {
		if err := output.WriteCSVReport(reportPath, report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// createLogger creates a logger from flags, falling back to the config
// file's logging section when no log file flag is given
func createLogger(cfg *config.Config) (logging.Logger, error) {
	logFile := scanFlags.LogFile
	logFormat := scanFlags.LogFormat
	logLevel := scanFlags.LogLevel

	if logFile == "" {
		if !cfg.Logging.Enabled || cfg.Logging.File == "" {
			return logging.NewNullLogger(), nil
		}
		logFile, logFormat, logLevel = cfg.Logging.File, cfg.Logging.Format, cfg.Logging.Level
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   logFile,
		Format: format,
		Level:  level,
	})
}
