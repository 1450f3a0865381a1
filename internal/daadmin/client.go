package daadmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kebairia/dabackup/internal/logger"
)

// TokenSource provides bearer tokens for API calls. The credentials
// package supplies the real implementation.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is an HTTP client for the content-admin API. It handles request
// construction, authentication headers, and error normalization.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        logger.Logger

	// now is called when computing backup folder names. Tests override it
	// for deterministic names.
	now func() time.Time
}

// NewClient creates a content-admin API client. baseURL is typically
// "https://admin.da.live".
func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.Global()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		log:        log,
		now:        time.Now,
	}
}

// do executes one request and normalizes the response. A 204 yields a nil
// result. JSON responses are decoded into generic values; anything else
// comes back as a raw string. Non-2xx statuses produce an *APIError
// carrying the status code and body text, logged as a warning before
// returning.
//
// Every non-multipart call is typed application/json, body or not.
// Multipart bodies carry their own boundary header, so the caller's
// content type is passed through untouched.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")
	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("daadmin: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			errBody = []byte("(failed to read response body)")
		}
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(errBody)),
			Err:        classifyStatus(resp.StatusCode),
		}
		c.log.Warn("request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"body", apiErr.Body,
		)
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("daadmin: read response body: %w", err)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if strings.Contains(mediaType, "json") {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("daadmin: decode JSON response: %w", err)
		}
		return decoded, nil
	}
	return string(raw), nil
}

// encodePathSegments URL-encodes each segment of a slash-separated path.
// Characters like #, ?, %, and spaces are encoded per segment so the
// slashes survive as path separators.
func encodePathSegments(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// joinPath builds an API path from a prefix and location parts, skipping
// empty parts and encoding each segment.
func joinPath(prefix string, parts ...string) string {
	p := prefix
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part == "" {
			continue
		}
		p += "/" + encodePathSegments(part)
	}
	return p
}
