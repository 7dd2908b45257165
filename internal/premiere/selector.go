package premiere

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nssk/internal/logging"
	"nssk/internal/services"
	"nssk/internal/sonarr"
)

// Outcome classifies how a series was handled in a run.
type Outcome string

const (
	OutcomeNoFutureEpisodes  Outcome = "no_future_episodes"
	OutcomeNotPremiere       Outcome = "not_premiere"
	OutcomeAlreadyDownloaded Outcome = "already_downloaded"
	OutcomeOutsideWindow     Outcome = "outside_window"
	OutcomeUnmonitored       Outcome = "unmonitored"
	OutcomeMatched           Outcome = "matched"
)

// Options holds the inputs every selection decision shares.
type Options struct {
	Now             time.Time
	WindowDays      int
	SkipUnmonitored bool
}

// Cutoff is the latest air time that still counts as upcoming.
func (o Options) Cutoff() time.Time {
	return o.Now.UTC().Add(time.Duration(o.WindowDays) * 24 * time.Hour)
}

// Decision is the result of evaluating one series.
type Decision struct {
	Outcome Outcome
	// Next is the nearest future episode; nil for OutcomeNoFutureEpisodes.
	Next *sonarr.Episode
	// Show is set for OutcomeMatched and OutcomeUnmonitored.
	Show *Show
}

// Evaluate decides whether series has a qualifying premiere among episodes.
func Evaluate(series sonarr.Series, episodes []sonarr.Episode, opts Options) Decision {
	now := opts.Now.UTC()

	var next *sonarr.Episode
	for i := range episodes {
		ep := &episodes[i]
		if ep.AirTime == nil || !ep.AirTime.After(now) {
			continue
		}
		// Strictly earlier only, so equal air times keep feed order.
		if next == nil || ep.AirTime.Before(*next.AirTime) {
			next = ep
		}
	}
	if next == nil {
		return Decision{Outcome: OutcomeNoFutureEpisodes}
	}

	switch {
	case next.SeasonNumber < 1 || next.EpisodeNumber != 1:
		return Decision{Outcome: OutcomeNotPremiere, Next: next}
	case next.HasFile:
		return Decision{Outcome: OutcomeAlreadyDownloaded, Next: next}
	case next.AirTime.After(opts.Cutoff()):
		return Decision{Outcome: OutcomeOutsideWindow, Next: next}
	}

	show := &Show{
		SeriesID:     series.ID,
		Title:        series.Title,
		SeasonNumber: next.SeasonNumber,
		AirDate:      CalendarDate(*next.AirTime),
		TVDBID:       series.TVDBID,
	}
	if opts.SkipUnmonitored && (!next.Monitored || !series.SeasonMonitored(next.SeasonNumber)) {
		return Decision{Outcome: OutcomeUnmonitored, Next: next, Show: show}
	}
	return Decision{Outcome: OutcomeMatched, Next: next, Show: show}
}

// EpisodeSource fetches the episodes of one series.
type EpisodeSource interface {
	Episodes(ctx context.Context, seriesID int64) ([]sonarr.Episode, error)
}

// Result holds the shows a run matched and those skipped as unmonitored, in
// catalog order.
type Result struct {
	Matched []Show
	Skipped []Show
}

// Selector evaluates a whole catalog against one set of options.
type Selector struct {
	source EpisodeSource
	opts   Options
	logger *slog.Logger
}

// NewSelector constructs a Selector. A nil logger discards output.
func NewSelector(source EpisodeSource, opts Options, logger *slog.Logger) *Selector {
	return &Selector{
		source: source,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "selector"),
	}
}

// Select fetches episodes for each series in turn and classifies it. The first
// fetch failure aborts the pass; no partial result is returned.
func (s *Selector) Select(ctx context.Context, catalog []sonarr.Series) (Result, error) {
	result := Result{Matched: []Show{}, Skipped: []Show{}}
	for _, series := range catalog {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		seriesCtx := services.WithSeriesID(ctx, series.ID)
		episodes, err := s.source.Episodes(seriesCtx, series.ID)
		if err != nil {
			return Result{}, fmt.Errorf("fetch episodes for %q: %w", series.Title, err)
		}

		decision := Evaluate(series, episodes, s.opts)
		s.logDecision(seriesCtx, series, decision)

		switch decision.Outcome {
		case OutcomeMatched:
			result.Matched = append(result.Matched, *decision.Show)
		case OutcomeUnmonitored:
			result.Skipped = append(result.Skipped, *decision.Show)
		}
	}
	return result, nil
}

func (s *Selector) logDecision(ctx context.Context, series sonarr.Series, decision Decision) {
	logger := logging.WithContext(ctx, s.logger)
	attrs := logging.DecisionAttrs("premiere_selection", string(decision.Outcome), decisionReason(decision, s.opts))
	attrs = append(attrs, logging.String(logging.FieldSeriesTitle, series.Title))
	if decision.Next != nil {
		attrs = append(attrs,
			logging.Int("season", decision.Next.SeasonNumber),
			logging.Int("episode", decision.Next.EpisodeNumber),
			logging.String("air_time", decision.Next.AirTime.Format(time.RFC3339)),
		)
	}
	logger.Debug("series evaluated", logging.Args(attrs...)...)
}

func decisionReason(decision Decision, opts Options) string {
	switch decision.Outcome {
	case OutcomeNoFutureEpisodes:
		return "no episode with a future air time"
	case OutcomeNotPremiere:
		return "next episode is not a season premiere"
	case OutcomeAlreadyDownloaded:
		return "next premiere already has a file"
	case OutcomeOutsideWindow:
		return fmt.Sprintf("next premiere airs after %s", opts.Cutoff().Format(time.RFC3339))
	case OutcomeUnmonitored:
		return "season or episode is unmonitored"
	default:
		return "premiere within window"
	}
}
