package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/feedback-board/internal/metrics"
	"github.com/hitoshi/feedback-board/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	Logger      *slog.Logger
	Development bool

	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// フィードバック
	Store FeedbackStore

	// ヘルスチェック用のDB疎通確認
	DB Pinger

	// メトリクス（nil可）
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer

	// 静的フロントエンド（nil可）
	Static http.Handler
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Recovery → SecurityHeaders → CORS → RateLimit → Metrics
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}

	var submissions SubmissionRecorder
	if deps.Metrics != nil {
		submissions = deps.Metrics
	}
	feedbackHandler := NewFeedbackHandler(deps.Store, deps.Logger, deps.Development, submissions)

	r.Route("/api/feedback", func(r chi.Router) {
		r.Post("/", feedbackHandler.Submit)
		r.Get("/", feedbackHandler.List)
		r.Get("/stats", feedbackHandler.Stats)
	})

	r.Get("/health", NewHealthHandler(deps.DB))

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// 未定義ルートもJSONで応答する
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Success: false,
			Error:   "Route not found",
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Success: false,
			Error:   "Method not allowed",
		})
	})

	// 静的フロントエンドはルート直下にマウントする
	if deps.Static != nil {
		r.Handle("/", deps.Static)
		r.Handle("/static/*", http.StripPrefix("/static", deps.Static))
	}

	return r
}
