package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ghost2804/finhub/pkg/models/market"
)

const defaultBaseURL = "https://eodhd.com/api"

// APIError represents an error reply from the EODHD API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("eodhd api error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// Client provides access to the EODHD REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	maxRetries   int
	retryBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// New creates a new EODHD client. An empty token falls back to the public
// demo token, which only serves a handful of symbols.
func New(token string, opts ...Option) *Client {
	if token == "" {
		token = "demo"
	}
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries:   3,
		retryBackoff: time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Ticker normalizes a watchlist symbol into an EODHD ticker. Bare symbols
// are US listings and gain the ".US" suffix; suffixed ones pass through.
func Ticker(symbol string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".US"
}

// doRequest performs an HTTP request with the given method and path.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_token", c.token)
	query.Set("fmt", "json")
	fullURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// doWithRetry performs a request with exponential backoff retry.
func (c *Client) doWithRetry(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			logger().Debugw("retrying request", "attempt", attempt, "backoff", jitter, "path", path)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		body, err := c.doRequest(ctx, method, path, query)
		if err == nil {
			return body, nil
		}

		lastErr = err

		apiErr, ok := err.(*APIError)
		if !ok || !apiErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// get performs a GET request with retries and decodes the JSON reply.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.doWithRetry(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// EOD returns the daily bars for symbol between from and to, both inclusive.
func (c *Client) EOD(ctx context.Context, symbol string, from, to time.Time) ([]market.Candle, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))
	q.Set("period", "d")
	var out []market.Candle
	err := c.get(ctx, "/eod/"+Ticker(symbol), q, &out)
	return out, err
}

// RealTimeQuote is the delayed live quote EODHD serves for one ticker.
type RealTimeQuote struct {
	Code          string  `json:"code"`
	Timestamp     int64   `json:"timestamp"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	Volume        int64   `json:"volume"`
	PreviousClose float64 `json:"previousClose"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_p"`
}

// RealTime fetches the delayed live quote for one symbol.
func (c *Client) RealTime(ctx context.Context, symbol string) (q RealTimeQuote, err error) {
	err = c.get(ctx, "/real-time/"+Ticker(symbol), nil, &q)
	return
}

// Fundamentals is the slice of the EODHD fundamentals document finhub uses.
type Fundamentals struct {
	General struct {
		Code string `json:"Code"`
		Name string `json:"Name"`
	} `json:"General"`
	Highlights struct {
		MarketCapitalization float64 `json:"MarketCapitalization"`
		PERatio              float64 `json:"PERatio"`
		DividendYield        float64 `json:"DividendYield"`
	} `json:"Highlights"`
	Valuation struct {
		PriceBookMRQ float64 `json:"PriceBookMRQ"`
	} `json:"Valuation"`
}

// GetFundamentals fetches the fundamentals document for one symbol.
func (c *Client) GetFundamentals(ctx context.Context, symbol string) (f Fundamentals, err error) {
	err = c.get(ctx, "/fundamentals/"+Ticker(symbol), nil, &f)
	return
}

// NewsItem is one article from the EODHD financial news feed.
type NewsItem struct {
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Link    string   `json:"link"`
	Symbols []string `json:"symbols"`
}

// News fetches recent articles tagged with symbol. A zero limit uses the
// feed's default page size.
func (c *Client) News(ctx context.Context, symbol string, limit int) ([]NewsItem, error) {
	q := url.Values{}
	q.Set("s", Ticker(symbol))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []NewsItem
	err := c.get(ctx, "/news", q, &out)
	return out, err
}
