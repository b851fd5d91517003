// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordAuthSuccess()
	RecordAuthFailure(reason string)
	RecordLogin()
	RecordJobCreated()
	RecordJobDeleted()
	RecordApplicationCreated()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus          *prometheus.CounterVec
	requestLatency      prometheus.Histogram
	authSuccess         prometheus.Counter
	authFailure         *prometheus.CounterVec
	logins              prometheus.Counter
	jobsCreated         prometheus.Counter
	jobsDeleted         prometheus.Counter
	applicationsCreated prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "careerfy_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "careerfy_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		authSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careerfy_auth_success_total",
			Help: "トークン検証成功の合計数",
		}),
		authFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "careerfy_auth_failure_total",
			Help: "トークン検証失敗の理由別合計数",
		}, []string{"reason"}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careerfy_logins_total",
			Help: "トークン発行の合計数",
		}),
		jobsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careerfy_jobs_created_total",
			Help: "作成された求人の合計数",
		}),
		jobsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careerfy_jobs_deleted_total",
			Help: "削除された求人の合計数",
		}),
		applicationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careerfy_applications_created_total",
			Help: "作成された応募の合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.authSuccess,
		c.authFailure,
		c.logins,
		c.jobsCreated,
		c.jobsDeleted,
		c.applicationsCreated,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordAuthSuccess はトークン検証成功を記録する。
func (c *Collector) RecordAuthSuccess() {
	c.authSuccess.Inc()
}

// RecordAuthFailure はトークン検証失敗を理由付きで記録する。
func (c *Collector) RecordAuthFailure(reason string) {
	c.authFailure.WithLabelValues(reason).Inc()
}

// RecordLogin はトークン発行を記録する。
func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

// RecordJobCreated は求人作成を記録する。
func (c *Collector) RecordJobCreated() {
	c.jobsCreated.Inc()
}

// RecordJobDeleted は求人削除を記録する。
func (c *Collector) RecordJobDeleted() {
	c.jobsDeleted.Inc()
}

// RecordApplicationCreated は応募作成を記録する。
func (c *Collector) RecordApplicationCreated() {
	c.applicationsCreated.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
