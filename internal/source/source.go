// Package source reads chart payloads from a file, stdin or an HTTP URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Stdin is the input name that reads the payload from standard input.
const Stdin = "-"

// maxPayload caps how much is read from any source.
const maxPayload = 8 << 20

// Loader fetches payload bytes.
type Loader struct {
	http   *http.Client
	stdin  io.Reader
	logger *slog.Logger
}

// NewLoader returns a Loader using timeout for HTTP requests.
func NewLoader(timeout time.Duration, logger *slog.Logger) *Loader {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		http:   &http.Client{Timeout: timeout},
		stdin:  os.Stdin,
		logger: logger.With("component", "source"),
	}
}

// Load returns the raw payload named by input: "-" for stdin, an http(s)
// URL, or a file path.
func (l *Loader) Load(ctx context.Context, input string) ([]byte, error) {
	switch {
	case input == Stdin:
		l.logger.Debug("reading payload from stdin")
		return readAll(l.stdin)
	case isURL(input):
		return l.fetch(ctx, input)
	default:
		return l.readFile(input)
	}
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

func (l *Loader) readFile(input string) ([]byte, error) {
	absPath, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening payload: %w", err)
	}
	defer f.Close()

	l.logger.Info("reading payload file", "path", absPath)
	return readAll(f)
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPayload+1))
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	if len(data) > maxPayload {
		return nil, fmt.Errorf("payload exceeds %d bytes", maxPayload)
	}
	return data, nil
}

// serverError is a retryable 5xx response.
type serverError struct {
	status     int
	retryAfter time.Duration
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error: HTTP %d", e.status)
}

// fetch GETs url, retrying once on a 5xx response.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			l.logger.Debug("retrying payload request", "attempt", attempt+1)
		}

		data, err := l.get(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err

		var se *serverError
		if !errors.As(err, &se) {
			return nil, err
		}
		if se.retryAfter > 0 {
			select {
			case <-time.After(se.retryAfter):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("fetching %s: %w", url, lastErr)
}

func (l *Loader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting payload: %w", err)
	}
	defer resp.Body.Close()

	l.logger.Info("payload response", "url", url, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 500 {
		se := &serverError{status: resp.StatusCode}
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				se.retryAfter = time.Duration(secs) * time.Second
			}
		}
		return nil, se
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return readAll(resp.Body)
}
