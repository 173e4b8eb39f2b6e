// Package model はドメインモデルを定義する。
package model

import "fmt"

// ValidationError はクライアント起因の入力エラーを表す。
// ハンドラー層で400レスポンスにマッピングされ、メッセージは
// そのままユーザーに提示できる内容とする。
type ValidationError struct {
	Code    string // エラーコード
	Message string // ユーザー向けメッセージ
	// Details はMISSING_FIELDSの場合のみ設定される、フィールド名から
	// エラーメッセージへのマッピング。存在したフィールドはnilを保持し、
	// JSONではnullとして出力される。
	Details map[string]*string
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingFields    = "MISSING_FIELDS"
	ErrCodeInvalidName      = "INVALID_NAME"
	ErrCodeNameTooLong      = "NAME_TOO_LONG"
	ErrCodeInvalidMessage   = "INVALID_MESSAGE"
	ErrCodeMessageTooLong   = "MESSAGE_TOO_LONG"
	ErrCodeInvalidRating    = "INVALID_RATING"
	ErrCodeInvalidSortField = "INVALID_SORT_FIELD"
	ErrCodeInvalidOrder     = "INVALID_ORDER"
)

// NewMissingFieldsError は必須フィールド欠落エラーを生成する。
// 3フィールドの欠落状態を1回のバリデーションでまとめて報告する。
func NewMissingFieldsError(nameMissing, messageMissing, ratingMissing bool) *ValidationError {
	details := map[string]*string{
		"name":    nil,
		"message": nil,
		"rating":  nil,
	}
	if nameMissing {
		msg := "Name is required"
		details["name"] = &msg
	}
	if messageMissing {
		msg := "Message is required"
		details["message"] = &msg
	}
	if ratingMissing {
		msg := "Rating is required"
		details["rating"] = &msg
	}
	return &ValidationError{
		Code:    ErrCodeMissingFields,
		Message: "Missing required fields",
		Details: details,
	}
}

// NewInvalidNameError は名前が文字列でないか空の場合のエラーを生成する。
func NewInvalidNameError() *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidName,
		Message: "Name must be a non-empty string",
	}
}

// NewNameTooLongError は名前が最大長を超えた場合のエラーを生成する。
func NewNameTooLongError() *ValidationError {
	return &ValidationError{
		Code:    ErrCodeNameTooLong,
		Message: "Name must be less than 255 characters",
	}
}

// NewInvalidMessageError はメッセージが文字列でないか空の場合のエラーを生成する。
func NewInvalidMessageError() *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidMessage,
		Message: "Message must be a non-empty string",
	}
}

// NewMessageTooLongError はメッセージが最大長を超えた場合のエラーを生成する。
func NewMessageTooLongError() *ValidationError {
	return &ValidationError{
		Code:    ErrCodeMessageTooLong,
		Message: "Message must be less than 10,000 characters",
	}
}

// NewInvalidRatingError は評価が[1,5]の整数でない場合のエラーを生成する。
func NewInvalidRatingError() *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidRating,
		Message: "Rating must be an integer between 1 and 5",
	}
}

// NewInvalidSortFieldError はソートフィールドがホワイトリスト外の場合のエラーを生成する。
func NewInvalidSortFieldError() *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidSortField,
		Message: "Invalid sort field. Allowed values: rating, created_at, name",
	}
}

// NewInvalidOrderError はソート順がasc/desc以外の場合のエラーを生成する。
func NewInvalidOrderError() *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidOrder,
		Message: "Invalid order. Allowed values: asc, desc",
	}
}

// StorageError はドライバーレベルの永続化失敗を表す。
// ハンドラー層で汎用の500レスポンスにマッピングされ、内部詳細は
// developmentモードでのみレスポンスに含まれる。
type StorageError struct {
	Op  string // 失敗した操作名（create、list、statsなど）
	Err error  // ドライバーから返された元のエラー
}

// Error はerrorインターフェースを実装する。
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

// Unwrap はラップされた元のエラーを返す。
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError はStorageErrorを生成する。
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
