package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"nssk/internal/config"
	"nssk/internal/kometa"
	"nssk/internal/logging"
	"nssk/internal/notifications"
	"nssk/internal/premiere"
	"nssk/internal/services"
	"nssk/internal/sonarr"
)

// Runner executes NSSK passes against one configuration.
type Runner struct {
	cfg        *config.Config
	base       *slog.Logger
	logger     *slog.Logger
	notifier   notifications.Service
	httpClient *http.Client
	clock      func() time.Time
}

// Option configures optional Runner behavior.
type Option func(*Runner)

// WithNotifier overrides the notifier built from the configuration.
func WithNotifier(notifier notifications.Service) Option {
	return func(r *Runner) {
		if notifier != nil {
			r.notifier = notifier
		}
	}
}

// WithHTTPClient overrides the HTTP client used for Sonarr requests.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Runner) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// WithClock overrides the source of the current time.
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRunner constructs a Runner.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "init", "config required", nil)
	}
	timeout := time.Duration(cfg.Sonarr.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	runner := &Runner{
		cfg:        cfg,
		base:       logger,
		logger:     logging.NewComponentLogger(logger, "workflow"),
		notifier:   notifications.NewService(cfg),
		httpClient: &http.Client{Timeout: timeout},
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}

// RunOptions controls a single pass.
type RunOptions struct {
	// DryRun computes and renders both documents without writing them.
	DryRun bool
	// Now pins the reference time; zero means the runner's clock.
	Now time.Time
}

// Run executes one pass. Any configuration, connectivity, upstream, or
// output failure aborts the pass and is returned.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	started := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	now := opts.Now
	if now.IsZero() {
		now = r.clock()
	}
	report := &Report{
		RunID:           runID,
		Now:             now.UTC(),
		WindowDays:      r.cfg.Selection.FutureDays,
		SkipUnmonitored: r.cfg.Selection.SkipUnmonitoredEnabled(),
		DryRun:          opts.DryRun,
		Overlay:         Output{Path: r.cfg.OverlayPath()},
		Collection:      Output{Path: r.cfg.CollectionPath()},
	}
	logger.Info("run started",
		logging.String("now", report.Now.Format(time.RFC3339)),
		logging.Int("future_days", report.WindowDays),
		logging.Bool("skip_unmonitored", report.SkipUnmonitored),
		logging.Bool("dry_run", opts.DryRun),
	)

	if !opts.DryRun {
		unlock, err := r.acquireLock()
		if err != nil {
			return nil, err
		}
		defer unlock(logger)
	}

	if err := r.execute(ctx, logger, report); err != nil {
		r.notifyFailure(ctx, logger, err)
		return nil, err
	}

	report.Duration = time.Since(started)
	logger.Info("run completed",
		logging.Int("matched", len(report.Matched)),
		logging.Int("skipped", len(report.Skipped)),
		logging.Bool("overlay_written", report.Overlay.Written),
		logging.Bool("collection_written", report.Collection.Written),
		logging.String("duration", report.Duration.Round(time.Millisecond).String()),
	)
	r.notifyCompletion(ctx, logger, report)
	return report, nil
}

func (r *Runner) execute(ctx context.Context, logger *slog.Logger, report *Report) error {
	base, err := sonarr.Discover(ctx, r.cfg.Sonarr.URL, r.cfg.Sonarr.APIKey, r.httpClient)
	if err != nil {
		return err
	}
	report.BaseURL = base
	logger.Debug("sonarr api discovered", logging.String("base_url", base))

	client, err := sonarr.New(base, r.cfg.Sonarr.APIKey,
		sonarr.WithHTTPClient(r.httpClient),
		sonarr.WithRateLimit(r.cfg.Sonarr.RequestsPerSecond),
	)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "workflow", "sonarr client", "", err)
	}

	catalog, err := client.Series(ctx)
	if err != nil {
		return err
	}
	report.SeriesCount = len(catalog)
	logger.Info("series catalog fetched", logging.Int("series", len(catalog)))

	selector := premiere.NewSelector(client, premiere.Options{
		Now:             report.Now,
		WindowDays:      report.WindowDays,
		SkipUnmonitored: report.SkipUnmonitored,
	}, r.base)
	result, err := selector.Select(ctx, catalog)
	if err != nil {
		return err
	}
	report.Matched = result.Matched
	report.Skipped = result.Skipped

	report.Overlay.Document = kometa.RenderOverlay(result.Matched, kometa.OverlayConfig{
		Backdrop:     r.cfg.Backdrop,
		Text:         r.cfg.Text,
		BackdropKeys: r.cfg.BackdropKeys,
		TextKeys:     r.cfg.TextKeys,
	})
	report.Collection.Document = kometa.RenderCollection(result.Matched, kometa.CollectionConfig{
		Name:       r.cfg.Collection.Name,
		SortTitle:  r.cfg.Collection.SortTitle,
		FutureDays: r.cfg.Selection.FutureDays,
	})
	if report.Collection.Document.IsSuppressed() {
		logging.WarnWithContext(logger, "collection file not written", "collection_suppressed",
			logging.String("path", report.Collection.Path),
			logging.String(logging.FieldErrorHint, "add TVDB ids to the matched series in Sonarr"),
			logging.String(logging.FieldImpact, "previous collection file left unchanged"),
		)
	}

	if report.DryRun {
		return nil
	}
	for _, out := range []*Output{&report.Overlay, &report.Collection} {
		written, err := kometa.WriteFile(out.Path, out.Document)
		if err != nil {
			return err
		}
		out.Written = written
		if written {
			logger.Info("document written", logging.String("path", out.Path))
		}
	}
	return nil
}

func (r *Runner) acquireLock() (func(*slog.Logger), error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrOutput, "workflow", "prepare output", "", err)
	}
	lock := flock.New(r.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrOutput, "workflow", "acquire lock", r.cfg.LockPath(), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrLocked, "workflow", "acquire lock", fmt.Sprintf("another nssk run holds %s", r.cfg.LockPath()), nil)
	}
	return func(logger *slog.Logger) {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}, nil
}

func (r *Runner) notifyCompletion(ctx context.Context, logger *slog.Logger, report *Report) {
	lines := make([]string, len(report.Matched))
	for i, show := range report.Matched {
		lines[i] = show.String()
	}
	summary := notifications.RunSummary{
		WindowDays: report.WindowDays,
		Matched:    lines,
		Skipped:    len(report.Skipped),
		DryRun:     report.DryRun,
		Duration:   report.Duration,
	}
	if err := r.notifier.NotifyRunCompleted(ctx, summary); err != nil {
		logging.WarnWithContext(logger, "run notification failed", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run summary not delivered"),
		)
	}
}

func (r *Runner) notifyFailure(ctx context.Context, logger *slog.Logger, runErr error) {
	if errors.Is(runErr, context.Canceled) {
		return
	}
	if err := r.notifier.NotifyError(ctx, runErr, services.Category(runErr)); err != nil {
		logger.Debug("error notification failed", logging.Error(err))
	}
}
