package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger はヘルスチェックが必要とするデータベース疎通確認のインターフェース。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// NewHealthHandler は死活監視エンドポイントのハンドラーを返す。
// データベースへの疎通確認を含み、失敗時は503を返す。
func NewHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:   "unhealthy",
				Database: "unreachable",
			})
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Status:   "ok",
			Database: "connected",
		})
	}
}
