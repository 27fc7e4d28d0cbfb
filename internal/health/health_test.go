package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
)

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	healthy := PingerFunc(func(context.Context) error { return nil })
	broken := PingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		checker    *Checker
		wantStatus int
		wantHealth Status
	}{
		{
			name:       "no dependencies",
			checker:    NewChecker("test"),
			wantStatus: http.StatusOK,
			wantHealth: StatusHealthy,
		},
		{
			name:       "all healthy",
			checker:    NewChecker("test").With("redis", healthy),
			wantStatus: http.StatusOK,
			wantHealth: StatusHealthy,
		},
		{
			name:       "one dependency down",
			checker:    NewChecker("test").With("redis", healthy).With("sqlite", broken),
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health/ready", tt.checker.ReadyHandler())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			var body HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Status != tt.wantHealth {
				t.Errorf("expected %s, got %s", tt.wantHealth, body.Status)
			}
			if body.Version != "test" {
				t.Errorf("expected version test, got %s", body.Version)
			}
			if tt.wantHealth == StatusUnhealthy && body.Checks["sqlite"].Error == "" {
				t.Errorf("expected sqlite error to be reported: %+v", body.Checks)
			}
		})
	}
}

func TestGRPCHealthChecker(t *testing.T) {
	healthy := PingerFunc(func(context.Context) error { return nil })
	broken := PingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		checker    *Checker
		service    string
		wantStatus grpchealth.Status
		wantCode   connect.Code
	}{
		{
			name:       "server serving",
			checker:    NewChecker("test").With("redis", healthy),
			wantStatus: grpchealth.StatusServing,
		},
		{
			name:       "server not serving",
			checker:    NewChecker("test").With("redis", broken),
			wantStatus: grpchealth.StatusNotServing,
		},
		{
			name:       "single dependency",
			checker:    NewChecker("test").With("redis", healthy).With("sqlite", broken),
			service:    "redis",
			wantStatus: grpchealth.StatusServing,
		},
		{
			name:     "unknown dependency",
			checker:  NewChecker("test").With("redis", healthy),
			service:  "postgres",
			wantCode: connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.checker.GRPCHealthChecker().Check(context.Background(), &grpchealth.CheckRequest{
				Service: tt.service,
			})

			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("expected code %v, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("expected %v, got %v", tt.wantStatus, resp.Status)
			}
		})
	}
}
