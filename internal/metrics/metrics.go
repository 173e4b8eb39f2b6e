// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する。
type Collector struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      prometheus.Histogram
	feedbackSubmitted *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_board_http_requests_total",
			Help: "メソッド・ルート・ステータスコード別のHTTPリクエスト数",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedback_board_http_request_duration_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		feedbackSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_board_submissions_total",
			Help: "評価値別のフィードバック投稿数",
		}, []string{"rating"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.feedbackSubmitted,
	)

	return c
}

// RecordHTTPRequest は処理済みHTTPリクエストを記録する。
// routeにはカーディナリティを抑えるためルートパターンを渡すこと。
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

// RecordFeedbackSubmitted は受理されたフィードバック投稿を記録する。
func (c *Collector) RecordFeedbackSubmitted(rating int) {
	c.feedbackSubmitted.WithLabelValues(strconv.Itoa(rating)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
