package schedule

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"nssk/internal/premiere"
)

// DateGroup is the set of TVDB ids whose premiere airs on one calendar date.
type DateGroup struct {
	Date time.Time
	// IDs ascend and hold no duplicates or zero ids; it may be empty when
	// none of the shows airing that day carry a TVDB id.
	IDs []int64
}

// Group buckets shows by air date. Buckets are returned in ascending date
// order.
func Group(shows []premiere.Show) []DateGroup {
	sorted := slices.Clone(shows)
	slices.SortStableFunc(sorted, func(a, b premiere.Show) int {
		return premiere.CalendarDate(a.AirDate).Compare(premiere.CalendarDate(b.AirDate))
	})

	var groups []DateGroup
	for _, show := range sorted {
		date := premiere.CalendarDate(show.AirDate)
		if len(groups) == 0 || !groups[len(groups)-1].Date.Equal(date) {
			groups = append(groups, DateGroup{Date: date, IDs: []int64{}})
		}
		if show.HasTVDBID() {
			last := &groups[len(groups)-1]
			last.IDs = append(last.IDs, show.TVDBID)
		}
	}
	for i := range groups {
		groups[i].IDs = sortedUnique(groups[i].IDs)
	}
	return groups
}

// GlobalIDs returns every non-zero TVDB id across shows, ascending and
// de-duplicated.
func GlobalIDs(shows []premiere.Show) []int64 {
	ids := make([]int64, 0, len(shows))
	for _, show := range shows {
		if show.HasTVDBID() {
			ids = append(ids, show.TVDBID)
		}
	}
	return sortedUnique(ids)
}

// JoinIDs renders ids the way Kometa's tvdb_show builder expects them:
// decimal, separated by ", ".
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

func sortedUnique(ids []int64) []int64 {
	slices.Sort(ids)
	return slices.Compact(ids)
}
