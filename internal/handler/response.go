// Package handler はHTTPリクエスト/レスポンスの薄いアダプター層を提供する。
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/feedback-board/internal/model"
)

// errorResponse はエラーレスポンスの共通エンベロープ。
// DetailsはMISSING_FIELDSの場合のみ、Messageはdevelopmentモードの
// ストレージエラーの場合のみ設定される。
type errorResponse struct {
	Success bool               `json:"success"`
	Error   string             `json:"error"`
	Message string             `json:"message,omitempty"`
	Details map[string]*string `json:"details,omitempty"`
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeValidationError はValidationErrorを400レスポンスにマッピングする。
func writeValidationError(w http.ResponseWriter, ve *model.ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Success: false,
		Error:   ve.Message,
		Details: ve.Details,
	})
}

// writeStorageError はStorageErrorを汎用の500レスポンスにマッピングする。
// 生のエラー内容はdevelopmentモードでのみmessageフィールドに含める。
func writeStorageError(w http.ResponseWriter, userMessage string, err error, development bool) {
	resp := errorResponse{
		Success: false,
		Error:   userMessage,
	}
	if development {
		resp.Message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}
