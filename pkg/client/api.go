package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ghost2804/finhub/pkg/models/market"
)

// HistoryPair is one stored prompt/response exchange.
type HistoryPair struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// ChatAPI is the slice of the server the chat client needs.
type ChatAPI interface {
	History(ctx context.Context) ([]HistoryPair, error)
	Send(ctx context.Context, message string) (string, error)
}

// QuoteAPI is the slice of the server the ticker needs.
type QuoteAPI interface {
	Quotes(ctx context.Context) (market.Snapshot, error)
}

// StatusError captures a reply the server refused, either with a non-2xx
// status or with a structured error body.
type StatusError struct {
	StatusCode int
	Path       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("finhub api: status %d from %s: %s", e.StatusCode, e.Path, e.Message)
	}
	return fmt.Sprintf("finhub api: status %d from %s", e.StatusCode, e.Path)
}

// API talks to a running finhub server.
type API struct {
	baseURL string
	hc      *http.Client
}

var (
	_ ChatAPI  = (*API)(nil)
	_ QuoteAPI = (*API)(nil)
)

// APIOption configures an API.
type APIOption func(*API)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) APIOption {
	return func(a *API) { a.hc = hc }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) APIOption {
	return func(a *API) { a.hc.Timeout = d }
}

// NewAPI returns a client for the server at baseURL.
func NewAPI(baseURL string, opts ...APIOption) *API {
	a := &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) do(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.hc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var fail struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &fail)
		return &StatusError{StatusCode: resp.StatusCode, Path: path, Message: fail.Error}
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// History fetches the stored conversation in arrival order.
func (a *API) History(ctx context.Context) ([]HistoryPair, error) {
	var out struct {
		History []HistoryPair `json:"history"`
	}
	if err := a.do(ctx, http.MethodGet, "/chat-history", nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

// Send submits one message and returns the advisor's reply. A 2xx reply
// carrying an error field counts as a refusal, same as a non-2xx status.
func (a *API) Send(ctx context.Context, message string) (string, error) {
	var out struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := a.do(ctx, http.MethodPost, "/chat", map[string]string{"message": message}, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", &StatusError{StatusCode: http.StatusOK, Path: "/chat", Message: out.Error}
	}
	return out.Response, nil
}

// Quotes fetches the full current snapshot, keyed by symbol.
func (a *API) Quotes(ctx context.Context) (market.Snapshot, error) {
	var snap market.Snapshot
	if err := a.do(ctx, http.MethodGet, "/api/stocks", nil, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}
