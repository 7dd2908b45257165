package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}

// fakeSonarrServer serves a small catalog: one premiere with a TVDB id, one
// premiere on an unmonitored season, and one mid-season series.
func fakeSonarrServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/system/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/v3/series", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"title":"Andor","tvdbId":393189,"seasons":[{"seasonNumber":2,"monitored":true}]},
			{"id":2,"title":"Severance","tvdbId":371980,"seasons":[{"seasonNumber":3,"monitored":false}]},
			{"id":3,"title":"Ongoing","tvdbId":1}
		]`))
	})
	mux.HandleFunc("/api/v3/episode", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("seriesId") {
		case "1":
			_, _ = w.Write([]byte(`[{"seasonNumber":2,"episodeNumber":1,"airDateUtc":"2025-04-22T01:00:00Z","hasFile":false}]`))
		case "2":
			_, _ = w.Write([]byte(`[{"seasonNumber":3,"episodeNumber":1,"airDateUtc":"2025-04-25T01:00:00Z","hasFile":false}]`))
		default:
			_, _ = w.Write([]byte(`[{"seasonNumber":1,"episodeNumber":5,"airDateUtc":"2025-04-21T01:00:00Z","hasFile":false}]`))
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, sonarrURL string, extra string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	outDir := filepath.Join(dir, "kometa")
	path := filepath.Join(dir, "nssk.toml")
	content := fmt.Sprintf(`[sonarr]
url = %q
api_key = "secret-key"

[selection]
future_days = 14
skip_unmonitored = "True"

[output]
dir = %q

[logging]
level = "error"
%s`, sonarrURL, outDir, extra)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path, outDir
}
