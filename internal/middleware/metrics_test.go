package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mockHTTPMetrics struct {
	statuses  []int
	latencies []time.Duration
}

func (m *mockHTTPMetrics) RecordHTTPStatus(code int) {
	m.statuses = append(m.statuses, code)
}

func (m *mockHTTPMetrics) RecordRequestLatency(d time.Duration) {
	m.latencies = append(m.latencies, d)
}

// レスポンスのステータスコードとレイテンシが記録されることを検証
func TestMetricsMiddleware_RecordsStatusAndLatency(t *testing.T) {
	metrics := &mockHTTPMetrics{}
	mw := NewMetricsMiddleware(metrics)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/job-details/xyz", nil))

	if len(metrics.statuses) != 1 || metrics.statuses[0] != http.StatusNotFound {
		t.Errorf("statuses = %v, want [404]", metrics.statuses)
	}
	if len(metrics.latencies) != 1 {
		t.Fatalf("latencies数 = %d, want 1", len(metrics.latencies))
	}
	if metrics.latencies[0] < 0 {
		t.Errorf("latency = %v, 負の値は不正", metrics.latencies[0])
	}
}

// WriteHeader未呼び出し時に200として記録されることを検証
func TestMetricsMiddleware_ImplicitOK(t *testing.T) {
	metrics := &mockHTTPMetrics{}
	mw := NewMetricsMiddleware(metrics)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(metrics.statuses) != 1 || metrics.statuses[0] != http.StatusOK {
		t.Errorf("statuses = %v, want [200]", metrics.statuses)
	}
}
