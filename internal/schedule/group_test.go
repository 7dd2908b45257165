package schedule_test

import (
	"reflect"
	"slices"
	"testing"
	"time"

	"nssk/internal/premiere"
	"nssk/internal/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func show(title string, date time.Time, id int64) premiere.Show {
	return premiere.Show{Title: title, SeasonNumber: 2, AirDate: date, TVDBID: id}
}

func TestGroupSortsIDsWithinDate(t *testing.T) {
	shows := []premiere.Show{
		show("B", day(2025, 3, 1), 50),
		show("A", day(2025, 3, 1), 7),
	}
	groups := schedule.Group(shows)
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	if got := schedule.JoinIDs(groups[0].IDs); got != "7, 50" {
		t.Fatalf("JoinIDs = %q, want %q", got, "7, 50")
	}
}

func TestGroupOrdersDatesAndDropsMissingIDs(t *testing.T) {
	shows := []premiere.Show{
		show("Late", day(2025, 3, 9), 300),
		show("NoID", day(2025, 3, 5), 0),
		show("Early", day(2025, 3, 2), 200),
		show("Dup", day(2025, 3, 2), 200),
	}
	groups := schedule.Group(shows)
	want := []schedule.DateGroup{
		{Date: day(2025, 3, 2), IDs: []int64{200}},
		{Date: day(2025, 3, 5), IDs: []int64{}},
		{Date: day(2025, 3, 9), IDs: []int64{300}},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Fatalf("Group = %#v, want %#v", groups, want)
	}
}

func TestGroupNormalizesTimeOfDay(t *testing.T) {
	shows := []premiere.Show{
		show("A", time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC), 1),
		show("B", day(2025, 3, 1), 2),
	}
	if groups := schedule.Group(shows); len(groups) != 1 {
		t.Fatalf("expected shows on one day to share a group, got %d", len(groups))
	}
}

func TestGroupUnionMatchesGlobalIDs(t *testing.T) {
	shows := []premiere.Show{
		show("A", day(2025, 4, 3), 90),
		show("B", day(2025, 4, 1), 12),
		show("C", day(2025, 4, 3), 5),
		show("D", day(2025, 4, 2), 0),
		show("E", day(2025, 4, 1), 12),
		show("F", day(2025, 4, 2), 44),
	}
	groups := schedule.Group(shows)

	seen := map[int64]time.Time{}
	var union []int64
	for _, group := range groups {
		for _, id := range group.IDs {
			if _, dup := seen[id]; dup {
				t.Fatalf("id %d appears in more than one group", id)
			}
			seen[id] = group.Date
			union = append(union, id)
		}
	}
	slices.Sort(union)
	if global := schedule.GlobalIDs(shows); !reflect.DeepEqual(union, global) {
		t.Fatalf("union %v != global %v", union, global)
	}
	for _, s := range shows {
		if s.TVDBID != 0 && !seen[s.TVDBID].Equal(s.AirDate) {
			t.Fatalf("id %d grouped under %v, want %v", s.TVDBID, seen[s.TVDBID], s.AirDate)
		}
	}
}

func TestGroupDoesNotReorderInput(t *testing.T) {
	shows := []premiere.Show{show("B", day(2025, 5, 2), 2), show("A", day(2025, 5, 1), 1)}
	_ = schedule.Group(shows)
	if shows[0].Title != "B" {
		t.Fatal("Group mutated its input")
	}
}

func TestGlobalIDsEmpty(t *testing.T) {
	if ids := schedule.GlobalIDs(nil); len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
	if got := schedule.JoinIDs(nil); got != "" {
		t.Fatalf("JoinIDs(nil) = %q", got)
	}
}
