package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nssk/internal/config"
)

const userAgent = "NSSK-Go/1.0"

// maxListedShows caps how many titles a run summary spells out.
const maxListedShows = 10

// RunSummary describes a finished run.
type RunSummary struct {
	WindowDays int
	// Matched holds one display line per matched show, in catalog order.
	Matched  []string
	Skipped  int
	DryRun   bool
	Duration time.Duration
}

// Service defines the notification surface used by the workflow and CLI.
type Service interface {
	NotifyRunCompleted(ctx context.Context, summary RunSummary) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, summary RunSummary) error {
	var builder strings.Builder
	if len(summary.Matched) == 0 {
		fmt.Fprintf(&builder, "No new seasons starting within %d days", summary.WindowDays)
	} else {
		fmt.Fprintf(&builder, "📺 %d new season(s) starting within %d days", len(summary.Matched), summary.WindowDays)
		for i, line := range summary.Matched {
			if i == maxListedShows {
				fmt.Fprintf(&builder, "\n… and %d more", len(summary.Matched)-maxListedShows)
				break
			}
			builder.WriteString("\n- ")
			builder.WriteString(strings.TrimSpace(line))
		}
	}
	if summary.Skipped > 0 {
		fmt.Fprintf(&builder, "\nSkipped (unmonitored): %d", summary.Skipped)
	}
	if summary.Duration > 0 {
		fmt.Fprintf(&builder, "\nCompleted in %s", summary.Duration.Round(time.Second))
	}

	title := "NSSK - Run Complete"
	if summary.DryRun {
		title = "NSSK - Dry Run Complete"
	}
	data := payload{
		title:   title,
		message: builder.String(),
		tags:    []string{"nssk", "kometa", "completed"},
	}
	if len(summary.Matched) == 0 {
		data.priority = "low"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("❌ Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" during ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "NSSK - Error",
		message:  builder.String(),
		tags:     []string{"nssk", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "NSSK - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"nssk", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, RunSummary) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error     { return nil }
func (noopService) TestNotification(context.Context) error               { return nil }
