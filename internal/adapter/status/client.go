// Package status implements the HTTP client for the cloud sync-status
// endpoints: processing status, the has-synced routing check, and the
// processing trigger.
package status

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

const (
	processingStatusPath = "/get_processing_status"
	syncStatePath        = "/check_user_status"
	startProcessingPath  = "/start_shopify_processing"
)

// Client exposes operations to query the sync pipeline.
type Client interface {
	FetchProcessingStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error)
	FetchSyncState(ctx context.Context, shopDomain string) (bool, error)
	StartProcessing(ctx context.Context, shopDomain, idToken string) error
}

// HTTPClient implements Client against the cloud functions base URL.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// statusResponse mirrors the JSON payload of the processing-status endpoint.
type statusResponse struct {
	SimpleStatus string                     `json:"simple_status"`
	Stage        string                     `json:"stage"`
	Progress     int                        `json:"progress"`
	Steps        map[string]json.RawMessage `json:"steps"`
	StepOrder    []string                   `json:"step_order"`
	Summary      *model.SyncSummary         `json:"summary"`
	Error        string                     `json:"error"`
}

type stepResponse struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

type syncStateResponse struct {
	HasSynced bool `json:"has_synced"`
}

// NewHTTPClient creates a status client with a default request timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse status endpoint url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("status endpoint url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// FetchProcessingStatus queries the processing pipeline state for a shop.
// A 404 is a normal answer for a shop that has never synced and maps to a
// NoData report instead of an error.
func (c *HTTPClient) FetchProcessingStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error) {
	resp, err := c.get(ctx, processingStatusPath, shopDomain)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &model.StatusReport{NoData: true}, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &errs.MalformedResponseError{Err: err}
		}
		var data statusResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, &errs.MalformedResponseError{Err: err}
		}
		return &model.StatusReport{Status: data.toModel()}, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("processing status request failed",
			slog.String("shop", shopDomain),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, &errs.NetworkError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
}

// FetchSyncState reports whether the shop has completed at least one sync,
// which decides onboarding vs. dashboard routing.
func (c *HTTPClient) FetchSyncState(ctx context.Context, shopDomain string) (bool, error) {
	resp, err := c.get(ctx, syncStatePath, shopDomain)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, &errs.NetworkError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var data syncStateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return false, &errs.MalformedResponseError{Err: err}
	}
	return data.HasSynced, nil
}

// StartProcessing triggers a catalog sync run. The actual processing takes
// tens of minutes upstream; callers observe progress via polling, so only
// the acknowledgement matters here.
func (c *HTTPClient) StartProcessing(ctx context.Context, shopDomain, idToken string) error {
	if idToken == "" {
		return errs.ErrAuthRequired
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, startProcessingPath)

	payload, err := json.Marshal(map[string]string{
		"shop_domain": shopDomain,
		"idToken":     idToken,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &errs.NetworkError{Status: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &errs.NetworkError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

func (c *HTTPClient) get(ctx context.Context, endpointPath, shopDomain string) (*http.Response, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)
	query := url.Values{}
	query.Set("shop_domain", shopDomain)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errs.NetworkError{Status: err.Error()}
	}
	return resp, nil
}

func (r *statusResponse) toModel() *model.SyncStatus {
	status := &model.SyncStatus{
		Stage:    r.Stage,
		Progress: r.Progress,
	}

	switch r.SimpleStatus {
	case "processing":
		status.Kind = model.StatusProcessing
		status.Steps = r.decodeSteps()
	case "completed":
		status.Kind = model.StatusCompleted
		status.Summary = r.Summary
	case "error":
		status.Kind = model.StatusError
		status.ErrorMessage = r.Error
	default:
		status.Kind = model.StatusUnknown
	}
	return status
}

// decodeSteps preserves the upstream step order when it is provided,
// falling back to map iteration otherwise.
func (r *statusResponse) decodeSteps() []model.StepState {
	if len(r.Steps) == 0 {
		return nil
	}

	names := r.StepOrder
	if len(names) == 0 {
		names = make([]string, 0, len(r.Steps))
		for name := range r.Steps {
			names = append(names, name)
		}
	}

	steps := make([]model.StepState, 0, len(names))
	for _, name := range names {
		raw, ok := r.Steps[name]
		if !ok {
			continue
		}
		var s stepResponse
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		kind := model.StatusKind(s.Status)
		switch kind {
		case model.StatusProcessing, model.StatusCompleted, model.StatusError:
		default:
			kind = model.StatusProcessing
		}
		steps = append(steps, model.StepState{Name: name, Status: kind, Progress: s.Progress})
	}
	return steps
}
