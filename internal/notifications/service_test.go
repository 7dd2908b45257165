package notifications_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"nssk/internal/config"
	"nssk/internal/notifications"
)

type captured struct {
	title    string
	body     string
	tags     string
	priority string
}

type recorder struct {
	mu   sync.Mutex
	msgs []captured
}

func (r *recorder) all() []captured {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]captured(nil), r.msgs...)
}

func newNtfyServer(t *testing.T, status int) (*httptest.Server, *recorder) {
	t.Helper()
	got := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		got.mu.Lock()
		defer got.mu.Unlock()
		got.msgs = append(got.msgs, captured{
			title:    r.Header.Get("Title"),
			body:     string(body),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
		})
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func serviceFor(url string) notifications.Service {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = url
	return notifications.NewService(&cfg)
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyRunCompleted(context.Background(), notifications.RunSummary{}); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := notifications.NewService(nil).TestNotification(context.Background()); err != nil {
		t.Fatalf("expected nil config to yield noop, got %v", err)
	}
}

func TestNotifyRunCompletedListsShows(t *testing.T) {
	srv, got := newNtfyServer(t, http.StatusOK)
	summary := notifications.RunSummary{
		WindowDays: 21,
		Matched:    []string{"Alpha (Season 2) airs on 2025-03-01 (TVDB ID: 1)", "Bravo (Season 5) airs on 2025-03-04 (TVDB ID: 2)"},
		Skipped:    1,
		Duration:   3 * time.Second,
	}
	if err := serviceFor(srv.URL).NotifyRunCompleted(context.Background(), summary); err != nil {
		t.Fatalf("NotifyRunCompleted returned error: %v", err)
	}
	msgs := got.all()
	if len(msgs) != 1 {
		t.Fatalf("expected one request, got %d", len(msgs))
	}
	msg := msgs[0]
	if msg.title != "NSSK - Run Complete" {
		t.Fatalf("unexpected title %q", msg.title)
	}
	want := "📺 2 new season(s) starting within 21 days\n- Alpha (Season 2) airs on 2025-03-01 (TVDB ID: 1)\n- Bravo (Season 5) airs on 2025-03-04 (TVDB ID: 2)\nSkipped (unmonitored): 1\nCompleted in 3s"
	if msg.body != want {
		t.Fatalf("unexpected body:\n%s", msg.body)
	}
	if msg.tags != "nssk,kometa,completed" || msg.priority != "" {
		t.Fatalf("unexpected headers: tags=%q priority=%q", msg.tags, msg.priority)
	}
}

func TestNotifyRunCompletedTruncatesLongLists(t *testing.T) {
	srv, got := newNtfyServer(t, http.StatusOK)
	var lines []string
	for i := 0; i < 13; i++ {
		lines = append(lines, fmt.Sprintf("Show %d", i))
	}
	if err := serviceFor(srv.URL).NotifyRunCompleted(context.Background(), notifications.RunSummary{WindowDays: 7, Matched: lines, DryRun: true}); err != nil {
		t.Fatalf("NotifyRunCompleted returned error: %v", err)
	}
	msg := got.all()[0]
	if !strings.HasSuffix(msg.body, "… and 3 more") || strings.Contains(msg.body, "Show 10") {
		t.Fatalf("unexpected body:\n%s", msg.body)
	}
	if msg.title != "NSSK - Dry Run Complete" {
		t.Fatalf("unexpected title %q", msg.title)
	}
}

func TestNotifyRunCompletedEmpty(t *testing.T) {
	srv, got := newNtfyServer(t, http.StatusOK)
	if err := serviceFor(srv.URL).NotifyRunCompleted(context.Background(), notifications.RunSummary{WindowDays: 14}); err != nil {
		t.Fatalf("NotifyRunCompleted returned error: %v", err)
	}
	msg := got.all()[0]
	if msg.body != "No new seasons starting within 14 days" || msg.priority != "low" {
		t.Fatalf("unexpected message: %#v", msg)
	}
}

func TestNotifyErrorIncludesContext(t *testing.T) {
	srv, got := newNtfyServer(t, http.StatusOK)
	if err := serviceFor(srv.URL).NotifyError(context.Background(), errors.New("sonarr unreachable"), "discovery"); err != nil {
		t.Fatalf("NotifyError returned error: %v", err)
	}
	msg := got.all()[0]
	if msg.body != "❌ Error during discovery: sonarr unreachable" || msg.priority != "high" {
		t.Fatalf("unexpected message: %#v", msg)
	}
}

func TestSendReportsHTTPFailure(t *testing.T) {
	srv, _ := newNtfyServer(t, http.StatusForbidden)
	if err := serviceFor(srv.URL).TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx ntfy response")
	}
}
