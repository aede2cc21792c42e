// Package fxratesapi talks to the remote exchange-rate service: the currency
// list endpoint and the single-pair conversion endpoint.
package fxratesapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"t-convert/internals/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the public FX Rates API.
const DefaultBaseURL = "https://api.fxratesapi.com"

const maxResponseBytes = 1 << 20

// RateAPIClient defines the calls made against the exchange-rate service.
type RateAPIClient interface {
	FetchCurrencies(ctx context.Context) ([]domain.CurrencyInfo, error)
	Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error)
}

// Client is the HTTP implementation of RateAPIClient. It makes exactly one
// attempt per call.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a Client. A nil httpClient means http.DefaultClient, which
// verifies server certificates.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// FetchCurrencies returns the supported currencies in response order. The body
// may be a JSON array of {code, name} objects or an object of such values keyed
// by code. Array entries without a string code are skipped; a document with
// entries but no usable currency is ErrMalformedResponse.
func (c *Client) FetchCurrencies(ctx context.Context) ([]domain.CurrencyInfo, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/currencies?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create currencies request: %w", err)
	}

	slog.Debug("Fetching supported currencies", "endpoint", c.baseURL+"/currencies")
	body, status, err := c.do(req)
	if err != nil {
		slog.Warn("Error fetching supported currencies", "error", err)
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, unparsable(status, body)
	}
	doc := gjson.ParseBytes(body)
	if apiErr := errorEnvelope(doc); apiErr != nil {
		return nil, apiErr
	}
	if !isSuccessStatus(status) {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUnexpectedStatus, status, body)
	}
	if !doc.IsArray() && !doc.IsObject() {
		return nil, fmt.Errorf("%w: %s", domain.ErrMalformedResponse, body)
	}
	if doc.IsObject() && !isKeyedCurrencyList(doc) {
		return nil, fmt.Errorf("%w: %s", domain.ErrMalformedResponse, body)
	}

	entries := 0
	currencies := make([]domain.CurrencyInfo, 0, 200)
	doc.ForEach(func(_, entry gjson.Result) bool {
		entries++
		code := entry.Get("code")
		if code.Type != gjson.String || code.Str == "" {
			return true
		}
		currencies = append(currencies, domain.CurrencyInfo{
			Code: domain.Currency(code.Str),
			Name: entry.Get("name").String(),
		})
		return true
	})
	if entries > 0 && len(currencies) == 0 {
		return nil, fmt.Errorf("%w: no currency entries: %s", domain.ErrMalformedResponse, body)
	}

	slog.Debug("Fetched supported currencies", "count", len(currencies))
	return currencies, nil
}

// Convert asks the service for the rate of req.From -> req.To on req.Date and
// applies it to req.Amount.
func (c *Client) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	params := url.Values{}
	params.Set("from", string(req.From))
	params.Set("to", string(req.To))
	params.Set("date", req.Date)
	params.Set("amount", FormatAmount(req.Amount))
	params.Set("format", "json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/convert?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create convert request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	slog.Debug("Requesting conversion", "request_id", requestID, "from", req.From, "to", req.To, "date", req.Date)
	body, status, err := c.do(httpReq)
	if err != nil {
		slog.Warn("Error requesting conversion", "request_id", requestID, "error", err)
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, unparsable(status, body)
	}
	doc := gjson.ParseBytes(body)
	if apiErr := errorEnvelope(doc); apiErr != nil {
		slog.Info("Conversion rejected by service", "request_id", requestID, "code", apiErr.Code)
		return nil, apiErr
	}
	if !isSuccessStatus(status) {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUnexpectedStatus, status, body)
	}

	rate := doc.Get("info.rate")
	if rate.Type != gjson.Number {
		slog.Warn("Conversion response has no numeric info.rate", "request_id", requestID)
		return nil, fmt.Errorf("%w: %s", domain.ErrMalformedResponse, body)
	}

	return domain.NewConversionResult(req, rate.Float(), c.now()), nil
}

// FormatAmount renders amount with exactly two fractional digits.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: reading response body: %w", domain.ErrTransport, err)
	}
	return body, resp.StatusCode, nil
}

// isKeyedCurrencyList reports whether every value of the object is itself an
// object carrying a string code.
func isKeyedCurrencyList(doc gjson.Result) bool {
	ok := true
	doc.ForEach(func(_, entry gjson.Result) bool {
		ok = entry.IsObject() && entry.Get("code").Type == gjson.String
		return ok
	})
	return ok
}

// errorEnvelope extracts {"success": false, "error": ..., "description": ...}.
func errorEnvelope(doc gjson.Result) *domain.APIError {
	if !doc.IsObject() || doc.Get("success").Type != gjson.False {
		return nil
	}
	code, description := doc.Get("error"), doc.Get("description")
	if code.Type != gjson.String || description.Type != gjson.String {
		return nil
	}
	return &domain.APIError{Code: code.Str, Description: description.Str}
}

func unparsable(status int, body []byte) error {
	if !isSuccessStatus(status) {
		return fmt.Errorf("%w: status %d: %s", domain.ErrUnexpectedStatus, status, body)
	}
	return fmt.Errorf("%w: %s", domain.ErrMalformedResponse, body)
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
