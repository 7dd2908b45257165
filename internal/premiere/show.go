package premiere

import (
	"fmt"
	"time"
)

// DateLayout is the canonical ISO form of an air date.
const DateLayout = "2006-01-02"

// Show is a series whose next season premiere qualified for output.
type Show struct {
	SeriesID     int64
	Title        string
	SeasonNumber int
	// AirDate is the UTC calendar date of the premiere, at midnight UTC.
	AirDate time.Time
	// TVDBID is zero when Sonarr has no TVDB id for the series.
	TVDBID int64
}

// HasTVDBID reports whether the show carries an external catalog id.
func (s Show) HasTVDBID() bool {
	return s.TVDBID != 0
}

// AirDateString returns the air date as YYYY-MM-DD.
func (s Show) AirDateString() string {
	return s.AirDate.Format(DateLayout)
}

func (s Show) String() string {
	id := "none"
	if s.HasTVDBID() {
		id = fmt.Sprintf("%d", s.TVDBID)
	}
	return fmt.Sprintf("%s (Season %d) airs on %s (TVDB ID: %s)", s.Title, s.SeasonNumber, s.AirDateString(), id)
}

// CalendarDate truncates t to midnight of its UTC calendar date.
func CalendarDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
