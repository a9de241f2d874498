package track

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// status reported by loaders that succeed without a network round trip
const StatusLocal = 0

// raw caption payload as returned by a Loader
type Response struct {
	Status int
	Body   string
}

// interface for fetching caption payloads
type Loader interface {
	Fetch(ctx context.Context, source string) (*Response, error)
}

// FetchError reports a payload that came back with a non-success status.
type FetchError struct {
	Source string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load subtitles file %q: status %d", e.Source, e.Status)
}

func IsSuccess(status int) bool {
	return status == http.StatusOK || status == StatusLocal
}

// returns a *FetchError unless resp carries a success status
func CheckResponse(source string, resp *Response) error {
	if resp == nil {
		return &FetchError{Source: source, Status: -1}
	}
	if !IsSuccess(resp.Status) {
		return &FetchError{Source: source, Status: resp.Status}
	}
	return nil
}

// FileLoader reads captions from the local filesystem.
type FileLoader struct{}

func (FileLoader) Fetch(ctx context.Context, source string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(source, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Response{Status: http.StatusNotFound}, nil
		}
		return nil, fmt.Errorf("failed to read subtitles file: %w", err)
	}
	return &Response{Status: StatusLocal, Body: string(data)}, nil
}

// HTTPLoader fetches captions with GET requests.
type HTTPLoader struct {
	Client *http.Client
}

func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{Client: &http.Client{Timeout: timeout}}
}

func (l *HTTPLoader) Fetch(ctx context.Context, source string) (*Response, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subtitles: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitles response: %w", err)
	}
	return &Response{Status: resp.StatusCode, Body: string(body)}, nil
}

// AutoLoader dispatches http(s) sources to HTTP and everything else to File.
type AutoLoader struct {
	HTTP Loader
	File Loader
}

func NewAutoLoader(timeout time.Duration) *AutoLoader {
	return &AutoLoader{HTTP: NewHTTPLoader(timeout), File: FileLoader{}}
}

func (l *AutoLoader) Fetch(ctx context.Context, source string) (*Response, error) {
	if IsRemote(source) {
		return l.HTTP.Fetch(ctx, source)
	}
	return l.File.Fetch(ctx, source)
}

func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
