package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/config"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
)

func TestBuildMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, nil)
	if rec == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv != nil || stop != nil {
		t.Fatalf("expected no metrics server on setup failure")
	}
}

func TestBuildMetricsDisabledSkipsServer(t *testing.T) {
	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: false}}, nil, nil)
	if rec == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
	if stop == nil {
		t.Fatalf("expected no-op shutdown when disabled")
	}
	if err := stop(context.Background()); err != nil {
		t.Fatalf("expected no-op shutdown to succeed, got %v", err)
	}
}

func TestBuildMetricsUsesInjectedRecorder(t *testing.T) {
	injected := metrics.NewRecorder()
	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, injected)
	if rec != injected {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv != nil || stop != nil {
		t.Fatalf("expected injected recorder to skip setup")
	}
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics addr :9999, got %s", srv.Addr())
	}
}
