package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/feedback-board/internal/feedback"
	"github.com/hitoshi/feedback-board/internal/middleware"
	"github.com/hitoshi/feedback-board/internal/model"
)

// FeedbackStore はフィードバックハンドラーが必要とする永続化インターフェース。
type FeedbackStore interface {
	// Create は検証済みの投稿を挿入し、生成された行を読み戻して返す。
	Create(ctx context.Context, sub *model.Submission) (*model.FeedbackEntry, error)
	// List は指定されたソート条件で全エントリーを返す。
	List(ctx context.Context, field feedback.SortField, order feedback.SortOrder) ([]*model.FeedbackEntry, error)
	// Stats はフィードバック全体の集計を返す。
	Stats(ctx context.Context) (*model.FeedbackStats, error)
}

// SubmissionRecorder は受理された投稿をメトリクスに記録するインターフェース。
type SubmissionRecorder interface {
	RecordFeedbackSubmitted(rating int)
}

// FeedbackHandler はフィードバックAPIのHTTPハンドラー。
type FeedbackHandler struct {
	store       FeedbackStore
	logger      *slog.Logger
	development bool
	submissions SubmissionRecorder
}

// NewFeedbackHandler はFeedbackHandlerを生成する。
// submissionsはnil可（メトリクス記録をスキップする）。
func NewFeedbackHandler(store FeedbackStore, logger *slog.Logger, development bool, submissions SubmissionRecorder) *FeedbackHandler {
	return &FeedbackHandler{
		store:       store,
		logger:      logger,
		development: development,
		submissions: submissions,
	}
}

// --- レスポンス型 ---

// submitResponse は投稿成功時のレスポンス。
type submitResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *model.FeedbackEntry `json:"data"`
}

// listResponse は一覧取得のレスポンス。
type listResponse struct {
	Success bool                   `json:"success"`
	Count   int                    `json:"count"`
	Data    []*model.FeedbackEntry `json:"data"`
}

// statsResponse は統計取得のレスポンス。
type statsResponse struct {
	Success bool                 `json:"success"`
	Data    *model.FeedbackStats `json:"data"`
}

// Submit はフィードバックを受け付けて永続化する。
// POST /api/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var raw feedback.RawSubmission
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Success: false,
			Error:   "Invalid JSON payload",
		})
		return
	}

	sub, err := feedback.Validate(raw)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			writeValidationError(w, ve)
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Success: false,
			Error:   "Invalid JSON payload",
		})
		return
	}

	entry, err := h.store.Create(r.Context(), sub)
	if err != nil {
		h.logger.Error("feedback create failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		writeStorageError(w, "Failed to submit feedback", err, h.development)
		return
	}

	if h.submissions != nil {
		h.submissions.RecordFeedbackSubmitted(entry.Rating)
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Success: true,
		Message: "Feedback submitted successfully",
		Data:    entry,
	})
}

// List は全フィードバックをソート指定付きで返す。
// GET /api/feedback?sortBy=created_at&order=desc
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	field, order, err := feedback.ParseSort(
		r.URL.Query().Get("sortBy"),
		r.URL.Query().Get("order"),
	)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			writeValidationError(w, ve)
			return
		}
		writeStorageError(w, "Failed to fetch feedback", err, h.development)
		return
	}

	entries, err := h.store.List(r.Context(), field, order)
	if err != nil {
		h.logger.Error("feedback list failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		writeStorageError(w, "Failed to fetch feedback", err, h.development)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Success: true,
		Count:   len(entries),
		Data:    entries,
	})
}

// Stats はフィードバックの統計集計を返す。
// GET /api/feedback/stats
func (h *FeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.logger.Error("feedback stats failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		writeStorageError(w, "Failed to fetch feedback statistics", err, h.development)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Success: true,
		Data:    stats,
	})
}
