// Package affiliate implements the HTTP client for the affiliate stats
// endpoint. Stats are fetched on behalf of an authenticated merchant and
// replace any previously held snapshot wholesale.
package affiliate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	errs "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/domain/model"
)

const statsPath = "/fetch_affiliate_stats"

// Client exposes affiliate stats retrieval.
type Client interface {
	FetchStats(ctx context.Context, idToken string) (*model.StatsSnapshot, error)
}

// HTTPClient implements Client against the cloud functions base URL.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// statsResponse mirrors the JSON payload of the stats endpoint.
type statsResponse struct {
	ShopName string       `json:"shop_name"`
	Events   []eventEntry `json:"events"`
}

type eventEntry struct {
	EventID    string         `json:"event_id"`
	Timestamp  time.Time      `json:"timestamp"`
	ShopDomain string         `json:"shopDomain"`
	Checkout   *checkoutEntry `json:"checkout"`
}

type checkoutEntry struct {
	OrderID     string `json:"orderId"`
	TotalAmount int64  `json:"totalAmount"`
	Currency    string `json:"currency"`
	ItemCount   int    `json:"itemCount"`
}

// NewHTTPClient creates an affiliate stats client with a default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse affiliate endpoint url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("affiliate endpoint url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// FetchStats retrieves the affiliate stats snapshot for the merchant behind
// idToken. A missing token fails fast: waiting will not produce one.
func (c *HTTPClient) FetchStats(ctx context.Context, idToken string) (*model.StatsSnapshot, error) {
	if idToken == "" {
		return nil, errs.ErrAuthRequired
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, statsPath)

	payload, err := json.Marshal(map[string]string{"idToken": idToken})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+idToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errs.NetworkError{Status: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("affiliate stats request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, &errs.NetworkError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.MalformedResponseError{Err: err}
	}
	var data statsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &errs.MalformedResponseError{Err: err}
	}

	return data.toModel(), nil
}

func (r *statsResponse) toModel() *model.StatsSnapshot {
	snapshot := &model.StatsSnapshot{
		ShopName:  r.ShopName,
		FetchedAt: time.Now().UTC(),
		Events:    make([]model.OrderEvent, 0, len(r.Events)),
	}
	for _, e := range r.Events {
		event := model.OrderEvent{
			EventID:    e.EventID,
			Timestamp:  e.Timestamp,
			ShopDomain: e.ShopDomain,
		}
		if e.Checkout != nil {
			event.Checkout = &model.Checkout{
				OrderID:               e.Checkout.OrderID,
				TotalAmountMinorUnits: e.Checkout.TotalAmount,
				Currency:              e.Checkout.Currency,
				ItemCount:             e.Checkout.ItemCount,
			}
		}
		snapshot.Events = append(snapshot.Events, event)
	}
	return snapshot
}
