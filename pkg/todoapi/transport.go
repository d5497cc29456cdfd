package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries a per-request id used to correlate log lines.
const RequestIDHeader = "X-Request-ID"

// Credentials are the username and password sent with HTTP Basic auth.
type Credentials struct {
	Username string
	Password string
}

// RawResponse is an HTTP response before normalization.
// JSON is nil when the body was empty.
type RawResponse struct {
	Status int
	Body   []byte
	JSON   any
}

// Transport sends one JSON request per call against a base URL.
type Transport struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewTransport creates a Transport for baseURL.
// A nil httpClient uses http.DefaultClient.
func NewTransport(baseURL string, httpClient *http.Client, logger zerolog.Logger) *Transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Transport{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  DefaultUserAgent,
		logger:     logger,
	}
}

// BaseURL returns the configured base URL.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// URL joins the base URL and path by plain concatenation.
// path must start with a slash.
func (t *Transport) URL(path string) string {
	return t.baseURL + path
}

// Send issues one request and returns the status and decoded body.
// body is JSON-encoded when non-nil; creds set Basic auth on this request
// only. The response body is closed before Send returns, on every path.
func (t *Transport) Send(ctx context.Context, path string, method Method, body any, creds *Credentials) (RawResponse, error) {
	url := t.URL(path)

	verb, err := method.Verb()
	if err != nil {
		return RawResponse{}, &TransportError{Op: "request", Method: method, URL: url, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return RawResponse{}, &TransportError{Op: "encode", Method: method, URL: url, Err: err}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, verb, url, reqBody)
	if err != nil {
		return RawResponse{}, &TransportError{Op: "request", Method: method, URL: url, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds != nil {
		req.SetBasicAuth(creds.Username, creds.Password)
	}

	log := t.logger.With().
		Str("method", verb).
		Str("url", url).
		Str("request_id", requestID).
		Logger()

	start := time.Now()
	res, err := t.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Dur("duration", time.Since(start)).Msg("request failed")
		return RawResponse{}, &TransportError{Op: "request", Method: method, URL: url, Err: err}
	}
	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close response body")
		}
	}(res.Body)

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return RawResponse{}, &TransportError{Op: "read", Method: method, URL: url, Err: err}
	}

	log.Debug().
		Int("status", res.StatusCode).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("response received")

	raw := RawResponse{Status: res.StatusCode, Body: data}
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(data, &raw.JSON); err != nil {
		return RawResponse{}, &TransportError{
			Op:     "decode",
			Method: method,
			URL:    url,
			Err:    fmt.Errorf("status %d: %w (body: %s)", res.StatusCode, err, preview(data, 200)),
		}
	}
	return raw, nil
}

func preview(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
