package status

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errs "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestFetchProcessingStatusParsesPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
		want func(t *testing.T, s *model.SyncStatus)
	}{
		{
			name: "processing with steps",
			body: `{"simple_status":"processing","stage":"classification","progress":42,` +
				`"step_order":["product_fetch","classification"],` +
				`"steps":{"product_fetch":{"status":"completed","progress":100},"classification":{"status":"processing","progress":42}}}`,
			want: func(t *testing.T, s *model.SyncStatus) {
				if s.Kind != model.StatusProcessing {
					t.Fatalf("expected processing, got %s", s.Kind)
				}
				if s.Stage != "classification" || s.Progress != 42 {
					t.Fatalf("unexpected stage/progress: %s/%d", s.Stage, s.Progress)
				}
				if len(s.Steps) != 2 {
					t.Fatalf("expected 2 steps, got %d", len(s.Steps))
				}
				if s.Steps[0].Name != "product_fetch" || s.Steps[0].Status != model.StatusCompleted {
					t.Fatalf("unexpected first step: %+v", s.Steps[0])
				}
				if s.Steps[1].Name != "classification" || s.Steps[1].Progress != 42 {
					t.Fatalf("unexpected second step: %+v", s.Steps[1])
				}
			},
		},
		{
			name: "completed with summary",
			body: `{"simple_status":"completed","summary":{"total_products_fetched":120,"total_products_processed":118,"publishable_products":95,"non_apparel_count":23,"completed_at":"2025-11-03T15:07:25Z"}}`,
			want: func(t *testing.T, s *model.SyncStatus) {
				if s.Kind != model.StatusCompleted {
					t.Fatalf("expected completed, got %s", s.Kind)
				}
				if s.Summary == nil || s.Summary.TotalProductsFetched != 120 || s.Summary.NonApparelCount != 23 {
					t.Fatalf("unexpected summary: %+v", s.Summary)
				}
				if len(s.Steps) != 0 || s.ErrorMessage != "" {
					t.Fatal("completed status must carry only a summary")
				}
			},
		},
		{
			name: "error with message",
			body: `{"simple_status":"error","error":"token expired"}`,
			want: func(t *testing.T, s *model.SyncStatus) {
				if s.Kind != model.StatusError {
					t.Fatalf("expected error kind, got %s", s.Kind)
				}
				if s.ErrorMessage != "token expired" {
					t.Fatalf("unexpected message %q", s.ErrorMessage)
				}
			},
		},
		{
			name: "missing simple_status maps to unknown",
			body: `{"stage":"warming_up"}`,
			want: func(t *testing.T, s *model.SyncStatus) {
				if s.Kind != model.StatusUnknown {
					t.Fatalf("expected unknown, got %s", s.Kind)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("shop_domain"); got != "demo.myshopify.com" {
					t.Errorf("unexpected shop_domain %q", got)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := NewHTTPClient(srv.URL, testLogger())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			report, err := client.FetchProcessingStatus(context.Background(), "demo.myshopify.com")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.NoData {
				t.Fatal("unexpected no-data report")
			}
			tt.want(t, report.Status)
		})
	}
}

func TestFetchProcessingStatusNotFoundIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	report, err := client.FetchProcessingStatus(context.Background(), "new-shop.myshopify.com")
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if !report.NoData {
		t.Fatal("expected no-data report for 404")
	}
	if report.Status != nil {
		t.Fatal("no-data report must not carry a status")
	}
}

func TestFetchProcessingStatusErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		check      func(t *testing.T, err error)
	}{
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       "boom",
			check: func(t *testing.T, err error) {
				var netErr *errs.NetworkError
				if !errors.As(err, &netErr) {
					t.Fatalf("expected NetworkError, got %v", err)
				}
				if netErr.StatusCode != http.StatusInternalServerError {
					t.Fatalf("unexpected status code %d", netErr.StatusCode)
				}
			},
		},
		{
			name:       "malformed body",
			statusCode: http.StatusOK,
			body:       "{not json",
			check: func(t *testing.T, err error) {
				var malformed *errs.MalformedResponseError
				if !errors.As(err, &malformed) {
					t.Fatalf("expected MalformedResponseError, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := NewHTTPClient(srv.URL, testLogger())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			_, err = client.FetchProcessingStatus(context.Background(), "demo.myshopify.com")
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestFetchSyncState(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       bool
		wantErr    bool
	}{
		{name: "synced", statusCode: http.StatusOK, body: `{"has_synced":true}`, want: true},
		{name: "never synced", statusCode: http.StatusOK, body: `{"has_synced":false}`, want: false},
		{name: "no record", statusCode: http.StatusNotFound, want: false},
		{name: "upstream failure", statusCode: http.StatusBadGateway, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := NewHTTPClient(srv.URL, testLogger())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			synced, err := client.FetchSyncState(context.Background(), "demo.myshopify.com")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if synced != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, synced)
			}
		})
	}
}

func TestStartProcessing(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if err := client.StartProcessing(context.Background(), "demo.myshopify.com", "token-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotBody, `"shop_domain":"demo.myshopify.com"`) || !strings.Contains(gotBody, `"idToken":"token-123"`) {
		t.Fatalf("unexpected request body %q", gotBody)
	}

	if err := client.StartProcessing(context.Background(), "demo.myshopify.com", ""); !errors.Is(err, errs.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired for missing token, got %v", err)
	}
}
