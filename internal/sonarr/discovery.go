package sonarr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nssk/internal/services"
)

// apiSuffixes lists the API paths Sonarr is commonly served under, in probe order.
var apiSuffixes = []string{"/api/v3", "/sonarr/api/v3"}

// ConnectivityError reports that no candidate API base answered the health check.
type ConnectivityError struct {
	Attempted []string
	Causes    []error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("could not reach the Sonarr API; tried: %s", strings.Join(e.Attempted, ", "))
}

// Unwrap lets errors.Is classify the failure as a connectivity error.
func (e *ConnectivityError) Unwrap() error {
	return services.ErrConnectivity
}

// Candidates returns the API base URLs to probe for a configured root, in order.
// A root that already ends in an API suffix is tried as-is first.
func Candidates(root string) []string {
	root = strings.TrimRight(strings.TrimSpace(root), "/")
	if root == "" {
		return nil
	}
	var out []string
	seen := map[string]struct{}{}
	add := func(candidate string) {
		if _, ok := seen[candidate]; ok {
			return
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	for _, suffix := range apiSuffixes {
		if strings.HasSuffix(root, suffix) {
			add(root)
			root = strings.TrimSuffix(root, suffix)
			break
		}
	}
	for _, suffix := range apiSuffixes {
		add(root + suffix)
	}
	return out
}

// Discover probes each candidate base with GET <base>/system/status and
// returns the first one that answers 200.
func Discover(ctx context.Context, root, apiKey string, client *http.Client) (string, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	candidates := Candidates(root)
	if len(candidates) == 0 {
		return "", services.Wrap(services.ErrConfiguration, "sonarr", "discover", "sonarr url is empty", nil)
	}
	connErr := &ConnectivityError{}
	for _, candidate := range candidates {
		connErr.Attempted = append(connErr.Attempted, candidate)
		err := probe(ctx, client, candidate, apiKey)
		if err == nil {
			return candidate, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		connErr.Causes = append(connErr.Causes, err)
	}
	return "", connErr
}

func probe(ctx context.Context, client *http.Client, base, apiKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/system/status", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, strings.TrimSpace(apiKey))

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s/system/status returned %d", base, resp.StatusCode)
	}
	return nil
}
