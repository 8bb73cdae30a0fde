// Package scan orchestrates one duplicate-detection run: enumeration,
// classification, fingerprinting and similarity scoring.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JanKosminski/DuplicateCrawler/pkg/classify"
	"github.com/JanKosminski/DuplicateCrawler/pkg/extract"
	"github.com/JanKosminski/DuplicateCrawler/pkg/logging"
	"github.com/JanKosminski/DuplicateCrawler/pkg/match"
	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
	"github.com/JanKosminski/DuplicateCrawler/pkg/output"
	"github.com/JanKosminski/DuplicateCrawler/pkg/ratelimit"
	"github.com/JanKosminski/DuplicateCrawler/pkg/storage"
)

// DefaultWorkers is the classification/hashing concurrency when none is set
const DefaultWorkers = 4

// Options holds all parameters for one scan
type Options struct {
	OperationID string
	Roots       []string
	Mode        models.MatchMode

	// Threshold is used exactly as configured, including 0.0 which
	// reports every pair with any similarity at all. Defaulting belongs
	// to the config layer, not here.
	Threshold         float64
	MinContentLength  int
	VectorOpThreshold int
	StripStopWords    bool

	ExcludePatterns []string
	Workers         int
	BlockSize       int
	BandwidthLimit  int64 // bytes per second, 0 = unlimited
}

// target is one enumerated file bound to the backend that can read it
type target struct {
	backend storage.Backend
	info    storage.FileInfo
}

// Session owns all state for one scan invocation. Sessions are single-use:
// repeated scans get fresh sessions so no state leaks between runs.
type Session struct {
	opts          Options
	classifier    *classify.Classifier
	fingerprinter *match.Fingerprinter
	matcher       *match.Matcher
	formatter     output.Formatter
	logger        logging.Logger
	out           io.Writer

	// errMu guards report.Errors; stats are merged at barriers
	errMu sync.Mutex
}

// NewSession creates a session for the given options. A nil formatter
// disables console output; a nil logger disables diagnostics.
func NewSession(opts Options, formatter output.Formatter, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}

	detector := extract.NewCADDetector(opts.VectorOpThreshold)
	classifier := classify.New(extract.NewFileExtractor(), detector, opts.MinContentLength, logger)

	matcher := match.NewMatcher(opts.Threshold, opts.Workers)
	matcher.StripStopWords = opts.StripStopWords

	return &Session{
		opts:          opts,
		classifier:    classifier,
		fingerprinter: match.NewFingerprinter(opts.BlockSize),
		matcher:       matcher,
		formatter:     formatter,
		logger:        logger,
		out:           os.Stdout,
	}
}

// SetOutput redirects console output, mainly for tests
func (s *Session) SetOutput(w io.Writer) {
	s.out = w
}

// Run executes the scan. Cancellation between files leaves a valid partial
// report with StatusCancelled rather than an error.
func (s *Session) Run(ctx context.Context) (*models.ScanReport, error) {
	report := &models.ScanReport{
		OperationID: s.opts.OperationID,
		Roots:       s.opts.Roots,
		Mode:        s.opts.Mode,
		Threshold:   s.opts.Threshold,
		StartTime:   time.Now(),
		Status:      models.StatusSuccess,
	}

	s.logger.Info(ctx, "starting scan", logging.Fields{
		"operation_id": s.opts.OperationID,
		"roots":        s.opts.Roots,
		"mode":         string(s.opts.Mode),
		"threshold":    s.opts.Threshold,
		"workers":      s.opts.Workers,
	})

	if s.opts.BandwidthLimit > 0 {
		limiter := ratelimit.NewLimiter(s.opts.BandwidthLimit)
		s.fingerprinter.SetReaderWrapper(func(r io.Reader) io.Reader {
			return ratelimit.NewReader(ctx, r, limiter)
		})
	}

	// Phase 1: enumerate all roots
	targets, err := s.enumerate(ctx, report)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return s.finalize(ctx, report, models.StatusCancelled), nil
		}
		report.Status = models.StatusFailed
		return report, err
	}
	defer func() {
		for _, t := range targets {
			t.backend.Close()
		}
	}()
	report.Stats.FilesScanned = len(targets)

	if s.formatter != nil {
		s.formatter.Start(s.out, len(targets))
	}

	// Phase 2: classify in parallel, merge at the barrier
	classifications, cancelled := s.classifyAll(ctx, targets, report)
	if cancelled {
		return s.finalize(ctx, report, models.StatusCancelled), nil
	}

	// Phase 3: dispatch to the matching engines
	index := match.NewIndex()
	corpus := &match.Corpus{}

	var hashTargets []target
	var hashRecs []classify.Classification
	for i, cl := range classifications {
		rec := cl.Record
		switch {
		case rec.Category == models.TextEligible && s.opts.Mode != models.ModeExact:
			corpus.Add(rec.Path, rec.NormalizedText)
		case s.opts.Mode == models.ModeText:
			// Text-only scans skip everything without extractable text
			report.Stats.FilesIgnored++
		default:
			// In exact mode text documents still take the semantic-hash
			// shortcut; only true binaries need byte hashing
			hashTargets = append(hashTargets, targets[i])
			hashRecs = append(hashRecs, cl)
		}
	}
	if s.fingerprintAll(ctx, hashTargets, hashRecs, index, report) {
		return s.finalize(ctx, report, models.StatusCancelled), nil
	}

	if s.formatter != nil {
		s.formatter.Progress(output.ProgressUpdate{Type: "matching"})
	}

	if s.opts.Mode != models.ModeText {
		report.Groups = index.Groups()
	}

	if s.opts.Mode != models.ModeExact {
		pairs, err := s.matcher.FindSimilar(ctx, corpus)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.finalize(ctx, report, models.StatusCancelled), nil
			}
			report.Status = models.StatusFailed
			return report, fmt.Errorf("failed to compute similarities: %w", err)
		}
		report.Pairs = pairs
	}

	status := models.StatusSuccess
	if report.Stats.FilesErrored > 0 {
		status = models.StatusPartial
		if report.Stats.FilesErrored == report.Stats.FilesScanned && report.Stats.FilesScanned > 0 {
			status = models.StatusFailed
		}
	}

	return s.finalize(ctx, report, status), nil
}

// enumerate lists every root and applies the exclude patterns
func (s *Session) enumerate(ctx context.Context, report *models.ScanReport) ([]target, error) {
	var targets []target

	for _, root := range s.opts.Roots {
		backend, err := storage.NewLocal(root)
		if err != nil {
			return nil, fmt.Errorf("failed to open root %s: %w", root, err)
		}

		files, err := backend.List(ctx, "")
		if err != nil {
			backend.Close()
			return nil, fmt.Errorf("failed to list %s: %w", root, err)
		}

		for _, f := range files {
			if f.IsDir {
				continue
			}
			if shouldExclude(f.RelativePath, s.opts.ExcludePatterns) {
				report.Stats.FilesIgnored++
				continue
			}
			targets = append(targets, target{backend: backend, info: f})
		}
	}

	return targets, nil
}

// classifyAll classifies every target with bounded parallelism. Results
// land in an indexed slice so worker scheduling never affects ordering;
// stats are tallied after the barrier.
func (s *Session) classifyAll(ctx context.Context, targets []target, report *models.ScanReport) ([]classify.Classification, bool) {
	results := make([]classify.Classification, len(targets))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, t := range targets {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = s.classifier.Classify(gctx, t.info.Path, t.info.RelativePath, t.info.Size)

			if s.formatter != nil {
				s.formatter.Progress(output.ProgressUpdate{
					Type:     "file_done",
					FilePath: t.info.RelativePath,
					Current:  int(done.Add(1)),
					Total:    len(targets),
				})
			}
			return nil
		})
	}

	cancelled := g.Wait() != nil

	// Tally only completed classifications; after cancellation the tail
	// of the results slice holds zero values
	var completed []classify.Classification
	for _, cl := range results {
		if cl.Record == nil {
			continue
		}
		completed = append(completed, cl)

		switch cl.Record.Category {
		case models.TextEligible:
			report.Stats.TextEligible++
		case models.BinaryOnly:
			report.Stats.BinaryFiles++
		}
		switch cl.Outcome {
		case classify.OutcomeVectorGraphic:
			report.Stats.VectorSkipped++
		case classify.OutcomeShortText:
			report.Stats.ShortText++
		}
	}

	if cancelled {
		return completed, true
	}
	return results, false
}

// fingerprintAll hashes the given records into the index. Text-eligible
// records hash their normalized text without touching the file again.
func (s *Session) fingerprintAll(ctx context.Context, targets []target, classifications []classify.Classification, index *match.Index, report *models.ScanReport) bool {
	for i, cl := range classifications {
		rec := cl.Record

		fp, bytesRead, err := s.fingerprinter.Fingerprint(ctx, targets[i].backend, rec)
		report.Stats.BytesHashed += bytesRead
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return true
			}
			s.recordError(ctx, report, rec.Path, "fingerprint", err)
			continue
		}

		index.Add(fp, rec.Path)
	}
	return false
}

// recordError appends a per-file diagnostic; the scan continues
func (s *Session) recordError(ctx context.Context, report *models.ScanReport, path, stage string, err error) {
	s.logger.Warn(ctx, "file skipped", logging.Fields{
		"path":  path,
		"stage": stage,
		"error": err.Error(),
	})

	s.errMu.Lock()
	defer s.errMu.Unlock()
	report.Stats.FilesErrored++
	report.Errors = append(report.Errors, models.ScanError{
		FilePath:  path,
		Stage:     stage,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}

// finalize stamps timing and status and emits the summary
func (s *Session) finalize(ctx context.Context, report *models.ScanReport, status models.ScanStatus) *models.ScanReport {
	report.Status = status
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	report.Stats.GroupsFound = len(report.Groups)
	report.Stats.PairsFound = len(report.Pairs)

	s.logger.Info(ctx, "scan completed", logging.Fields{
		"operation_id":  report.OperationID,
		"status":        string(report.Status),
		"duration":      report.Duration.String(),
		"files_scanned": report.Stats.FilesScanned,
		"groups":        report.Stats.GroupsFound,
		"pairs":         report.Stats.PairsFound,
	})

	if s.formatter != nil {
		s.formatter.Complete(report)
	}
	return report
}
