// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Sessions(t *testing.T) {
	c := New()

	c.SessionStarted("csv")
	c.SessionStarted("csv")
	c.SessionStarted("sample")
	c.SessionCompleted()
	c.SessionRemoved()

	if got := testutil.ToFloat64(c.sessionsStarted.WithLabelValues("csv")); got != 2 {
		t.Errorf("Expected 2 csv sessions, got %v", got)
	}
	if got := testutil.ToFloat64(c.sessionsCompleted); got != 1 {
		t.Errorf("Expected 1 completed session, got %v", got)
	}
	if got := testutil.ToFloat64(c.sessionsActive); got != 2 {
		t.Errorf("Expected 2 active sessions, got %v", got)
	}
}

func TestCollector_Judgments(t *testing.T) {
	c := New()

	c.Judgment(OutcomeAccepted)
	c.Judgment(OutcomeAccepted)
	c.Judgment(OutcomeRejected)
	c.RowsSkipped(3)
	c.RowsSkipped(0)

	if got := testutil.ToFloat64(c.judgments.WithLabelValues(OutcomeAccepted)); got != 2 {
		t.Errorf("Expected 2 accepted judgments, got %v", got)
	}
	if got := testutil.ToFloat64(c.judgments.WithLabelValues(OutcomeRejected)); got != 1 {
		t.Errorf("Expected 1 rejected judgment, got %v", got)
	}
	if got := testutil.ToFloat64(c.importWarnings); got != 3 {
		t.Errorf("Expected 3 skipped rows, got %v", got)
	}
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector

	// Must not panic
	c.SessionStarted("json")
	c.SessionCompleted()
	c.SessionRemoved()
	c.Judgment(OutcomeAccepted)
	c.RowsSkipped(1)
	c.ObserveRequest("GET", "/health", 200, time.Millisecond)
}

func TestCollector_Handler(t *testing.T) {
	c := New()
	c.ObserveRequest("POST", "POST /sessions", 201, 5*time.Millisecond)
	c.SessionStarted("json")

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"quickly_rank_sessions_started_total",
		"quickly_rank_http_request_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected /metrics to contain %s", want)
		}
	}
}
