package sonarr

import (
	"strings"
	"time"
)

// Season is one entry of a series' season list.
type Season struct {
	SeasonNumber int   `json:"seasonNumber"`
	Monitored    *bool `json:"monitored"`
}

// IsMonitored reports the season monitored flag, defaulting to true when absent.
func (s Season) IsMonitored() bool {
	return s.Monitored == nil || *s.Monitored
}

// Series is a Sonarr series record.
type Series struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	TVDBID  int64    `json:"tvdbId"`
	Seasons []Season `json:"seasons"`
}

// SeasonMonitored looks up the monitored flag for seasonNumber. Seasons missing
// from the list count as monitored.
func (s Series) SeasonMonitored(seasonNumber int) bool {
	for _, season := range s.Seasons {
		if season.SeasonNumber == seasonNumber {
			return season.IsMonitored()
		}
	}
	return true
}

// Episode is a Sonarr episode record with its air time normalized to UTC.
type Episode struct {
	ID            int64
	SeriesID      int64
	SeasonNumber  int
	EpisodeNumber int
	// AirTime is nil when airDateUtc is absent or cannot be parsed.
	AirTime   *time.Time
	HasFile   bool
	Monitored bool
}

// episodeRecord is the wire form of an episode.
type episodeRecord struct {
	ID            int64  `json:"id"`
	SeriesID      int64  `json:"seriesId"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	AirDateUTC    string `json:"airDateUtc"`
	HasFile       bool   `json:"hasFile"`
	Monitored     *bool  `json:"monitored"`
}

func (r episodeRecord) episode() Episode {
	ep := Episode{
		ID:            r.ID,
		SeriesID:      r.SeriesID,
		SeasonNumber:  r.SeasonNumber,
		EpisodeNumber: r.EpisodeNumber,
		HasFile:       r.HasFile,
		Monitored:     r.Monitored == nil || *r.Monitored,
	}
	if ts, ok := ParseAirTime(r.AirDateUTC); ok {
		ep.AirTime = &ts
	}
	return ep
}

var airTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseAirTime parses a Sonarr airDateUtc value into UTC. Values without a
// zone designator are taken to be UTC already.
func ParseAirTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range airTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
