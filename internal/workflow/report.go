package workflow

import (
	"time"

	"nssk/internal/kometa"
	"nssk/internal/premiere"
)

// Output is one rendered document and where it goes.
type Output struct {
	Path     string
	Document kometa.Document
	// Written is false for dry runs and suppressed documents.
	Written bool
}

// Report summarizes a completed pass.
type Report struct {
	RunID           string
	BaseURL         string
	Now             time.Time
	WindowDays      int
	SkipUnmonitored bool
	DryRun          bool
	SeriesCount     int
	Matched         []premiere.Show
	Skipped         []premiere.Show
	Overlay         Output
	Collection      Output
	Duration        time.Duration
}
