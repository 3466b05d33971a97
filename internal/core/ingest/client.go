// Package ingest sends normalized content URLs to a LiveChat ingestion
// endpoint. Every send resolves to a typed Result; failures are classified
// values, never panics or raw transport errors.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clipsend/clipsend/internal/config"
)

// DefaultTimeout bounds a single send, including body read.
const DefaultTimeout = 300 * time.Second

// Result is the outcome of a send. Exactly one of the two shapes holds:
// OK with Status/JobID/Message, or !OK with Failure set.
type Result struct {
	OK      bool     `json:"ok"`
	Status  int      `json:"status,omitempty"`
	JobID   string   `json:"jobId,omitempty"`
	Message string   `json:"message,omitempty"`
	Failure *Failure `json:"error,omitempty"`
}

func failure(code FailureCode, message string) Result {
	return Result{OK: false, Failure: &Failure{Code: code, Message: message}}
}

// Client posts ingest payloads. The zero value is not usable; use NewClient.
type Client struct {
	httpClient   *http.Client
	timeout      time.Duration
	loadSettings func() (*config.Settings, error)
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-send timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client (tests, proxies).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSettingsLoader overrides how settings are resolved when a Send call
// passes nil settings.
func WithSettingsLoader(load func() (*config.Settings, error)) Option {
	return func(c *Client) {
		if load != nil {
			c.loadSettings = load
		}
	}
}

// NewClient creates an ingest client with defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{},
		timeout:      DefaultTimeout,
		loadSettings: config.LoadSettings,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts the request to {apiUrl}/ingest. When st is nil, settings are
// loaded through the client's loader. Incomplete settings, a URL that fails
// normalization, and every transport or HTTP error all come back as a typed
// failure Result.
func (c *Client) Send(ctx context.Context, req Request, st *config.Settings) Result {
	if st == nil {
		loaded, err := c.loadSettings()
		if err != nil || loaded == nil {
			return failure(CodeSettingsMissing, "Configuration extension incomplète. Ouvre les options LiveChat.")
		}
		st = loaded
	}

	payload := BuildPayload(req, st)
	if payload == nil {
		return failure(CodeInvalidPayload, "URL invalide ou non supportée pour l’envoi.")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return failure(CodeInvalidPayload, "URL invalide ou non supportée pour l’envoi.")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, st.APIURL+"/ingest", bytes.NewReader(body))
	if err != nil {
		return Result{OK: false, Failure: mapNetworkFailure(err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+st.IngestToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{OK: false, Failure: mapNetworkFailure(err)}
	}
	defer resp.Body.Close()

	responseBody := parseResponseBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{OK: false, Failure: mapHTTPFailure(resp.StatusCode, responseBody)}
	}

	jobID := ""
	if v, ok := responseBody["jobId"].(string); ok {
		jobID = strings.TrimSpace(v)
	}

	message := "Envoyé vers LiveChat."
	if jobID != "" {
		short := jobID
		if len(short) > 8 {
			short = short[:8]
		}
		message = "Envoyé (job: " + short + "...)"
	}

	return Result{OK: true, Status: resp.StatusCode, JobID: jobID, Message: message}
}

// parseResponseBody reads the body leniently: JSON objects are decoded as-is,
// anything else becomes {"message": <trimmed text>}. Unreadable or empty
// bodies yield nil.
func parseResponseBody(resp *http.Response) map[string]any {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		parsed := map[string]any{}
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil
		}
		return parsed
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil
	}
	return map[string]any{"message": text}
}
