package sonarr_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"nssk/internal/services"
	"nssk/internal/sonarr"
)

func TestNewRequiresBaseURLAndKey(t *testing.T) {
	if _, err := sonarr.New("", "key"); err == nil {
		t.Fatal("expected error when base url missing")
	}
	if _, err := sonarr.New("http://localhost/api/v3", " "); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestSeriesDecodesCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/series" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("X-Api-Key"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Example","tvdbId":100,"seasons":[{"seasonNumber":1,"monitored":true},{"seasonNumber":2,"monitored":false},{"seasonNumber":3}]}]`))
	}))
	t.Cleanup(server.Close)

	client, err := sonarr.New(server.URL+"/api/v3/", "key")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	series, err := client.Series(context.Background())
	if err != nil {
		t.Fatalf("Series returned error: %v", err)
	}
	if len(series) != 1 || series[0].Title != "Example" || series[0].TVDBID != 100 {
		t.Fatalf("unexpected series: %#v", series)
	}
	if !series[0].SeasonMonitored(1) || series[0].SeasonMonitored(2) {
		t.Fatal("unexpected season monitored flags")
	}
	if !series[0].SeasonMonitored(3) || !series[0].SeasonMonitored(9) {
		t.Fatal("expected absent flag and absent season to default to monitored")
	}
}

func TestEpisodesNormalizesAirTimes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/episode" || r.URL.Query().Get("seriesId") != "7" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`[
			{"id":1,"seriesId":7,"seasonNumber":2,"episodeNumber":1,"airDateUtc":"2025-03-01T02:00:00Z","hasFile":false},
			{"id":2,"seriesId":7,"seasonNumber":2,"episodeNumber":2,"hasFile":false,"monitored":false},
			{"id":3,"seriesId":7,"seasonNumber":2,"episodeNumber":3,"airDateUtc":"not a date","hasFile":false},
			{"id":4,"seriesId":7,"seasonNumber":2,"episodeNumber":4,"airDateUtc":"2025-03-15T20:00:00-05:00","hasFile":true,"monitored":true}
		]`))
	}))
	t.Cleanup(server.Close)

	client, err := sonarr.New(server.URL+"/api/v3", "key")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	episodes, err := client.Episodes(context.Background(), 7)
	if err != nil {
		t.Fatalf("Episodes returned error: %v", err)
	}
	if len(episodes) != 4 {
		t.Fatalf("expected 4 episodes, got %d", len(episodes))
	}
	want := time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)
	if episodes[0].AirTime == nil || !episodes[0].AirTime.Equal(want) || episodes[0].AirTime.Location() != time.UTC {
		t.Fatalf("unexpected air time: %v", episodes[0].AirTime)
	}
	if !episodes[0].Monitored {
		t.Fatal("expected absent monitored flag to default to true")
	}
	if episodes[1].AirTime != nil || episodes[1].Monitored {
		t.Fatalf("unexpected episode 2: %#v", episodes[1])
	}
	if episodes[2].AirTime != nil {
		t.Fatal("expected malformed airDateUtc to yield nil air time")
	}
	if got := *episodes[3].AirTime; !got.Equal(time.Date(2025, 3, 16, 1, 0, 0, 0, time.UTC)) || got.Location() != time.UTC {
		t.Fatalf("expected offset time converted to UTC, got %v", got)
	}
}

func TestEpisodesHTTPErrorIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client, err := sonarr.New(server.URL, "key")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.Episodes(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream marker, got %v", err)
	}
}

func TestRateLimitedClientStillServes(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client, err := sonarr.New(server.URL, "key", sonarr.WithRateLimit(1000), sonarr.WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := client.Episodes(context.Background(), int64(i)); err != nil {
			t.Fatalf("Episodes returned error: %v", err)
		}
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
}

func TestParseAirTime(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2025-03-01T01:00:00Z", true, time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)},
		{"2025-03-01T01:00:00.500Z", true, time.Date(2025, 3, 1, 1, 0, 0, 500000000, time.UTC)},
		{"2025-03-01T01:00:00", true, time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"yesterday", false, time.Time{}},
	}
	for _, tt := range tests {
		got, ok := sonarr.ParseAirTime(tt.in)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Fatalf("ParseAirTime(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		root string
		want []string
	}{
		{"http://h:8989", []string{"http://h:8989/api/v3", "http://h:8989/sonarr/api/v3"}},
		{"http://h:8989/", []string{"http://h:8989/api/v3", "http://h:8989/sonarr/api/v3"}},
		{"http://h:8989/api/v3", []string{"http://h:8989/api/v3", "http://h:8989/sonarr/api/v3"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := sonarr.Candidates(tt.root); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Candidates(%q) = %v, want %v", tt.root, got, tt.want)
		}
	}
}

func TestDiscoverFallsBackToSecondSuffix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sonarr/api/v3/system/status" && r.Header.Get("X-Api-Key") == "key" {
			_, _ = w.Write([]byte(`{"version":"4.0.0"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	base, err := sonarr.Discover(context.Background(), server.URL, "key", server.Client())
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if base != server.URL+"/sonarr/api/v3" {
		t.Fatalf("unexpected base: %s", base)
	}
}

func TestDiscoverReportsAllAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	_, err := sonarr.Discover(context.Background(), server.URL, "key", server.Client())
	var connErr *sonarr.ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectivityError, got %v", err)
	}
	if len(connErr.Attempted) != 2 {
		t.Fatalf("expected two attempted urls, got %v", connErr.Attempted)
	}
	if !errors.Is(err, services.ErrConnectivity) {
		t.Fatal("expected connectivity marker")
	}
}
