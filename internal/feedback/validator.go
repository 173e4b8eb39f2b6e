// Package feedback はフィードバック投稿の検証とソートパラメータの
// ホワイトリスト検証を提供する。
package feedback

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hitoshi/feedback-board/internal/model"
)

// RawSubmission は未検証のリクエストボディを表す。
// 各フィールドはデコード前のJSONのまま保持し、キーの欠落（nil）と
// null値（非nil）を区別できるようにする。
type RawSubmission struct {
	Name    json.RawMessage `json:"name"`
	Message json.RawMessage `json:"message"`
	Rating  json.RawMessage `json:"rating"`
}

// Validate は投稿データを検証し、正規化済みのSubmissionを返す。
//
// ルールは以下の順に適用され、最初に失敗したルールがエラーを決定する。
// ただし必須フィールドチェックのみ3フィールドをまとめて評価し、
// 欠落状態を一括で報告する。
//
//  1. 必須: name/messageが欠落またはfalsy、もしくはratingキーが無い
//  2. nameが文字列でない、またはトリム後に空
//  3. トリム後のnameが255文字を超える
//  4. messageが文字列でない、またはトリム後に空
//  5. トリム後のmessageが10,000文字を超える
//  6. ratingが[1,5]の整数でない（3.5のような非整数値も拒否）
//
// 空白のみのnameは必須チェックを通過し、ルール2で拒否される。
func Validate(raw RawSubmission) (*model.Submission, error) {
	name := decodeField(raw.Name)
	message := decodeField(raw.Message)

	nameMissing := raw.Name == nil || isFalsy(name)
	messageMissing := raw.Message == nil || isFalsy(message)
	ratingMissing := raw.Rating == nil

	if nameMissing || messageMissing || ratingMissing {
		return nil, model.NewMissingFieldsError(nameMissing, messageMissing, ratingMissing)
	}

	nameStr, ok := name.(string)
	if !ok {
		return nil, model.NewInvalidNameError()
	}
	nameStr = strings.TrimSpace(nameStr)
	if nameStr == "" {
		return nil, model.NewInvalidNameError()
	}
	if utf8.RuneCountInString(nameStr) > model.MaxNameLength {
		return nil, model.NewNameTooLongError()
	}

	messageStr, ok := message.(string)
	if !ok {
		return nil, model.NewInvalidMessageError()
	}
	messageStr = strings.TrimSpace(messageStr)
	if messageStr == "" {
		return nil, model.NewInvalidMessageError()
	}
	if utf8.RuneCountInString(messageStr) > model.MaxMessageLength {
		return nil, model.NewMessageTooLongError()
	}

	rating, err := parseRating(raw.Rating)
	if err != nil {
		return nil, err
	}

	return &model.Submission{
		Name:    nameStr,
		Message: messageStr,
		Rating:  rating,
	}, nil
}

// parseRating はratingフィールドを検証して整数に変換する。
// 数値以外、非整数値、[1,5]の範囲外はすべてInvalidRatingとして扱う。
func parseRating(raw json.RawMessage) (int, error) {
	v := decodeField(raw)

	num, ok := v.(json.Number)
	if !ok {
		return 0, model.NewInvalidRatingError()
	}

	f, err := num.Float64()
	if err != nil {
		return 0, model.NewInvalidRatingError()
	}
	if f != math.Trunc(f) {
		return 0, model.NewInvalidRatingError()
	}

	rating := int(f)
	if rating < model.MinRating || rating > model.MaxRating {
		return 0, model.NewInvalidRatingError()
	}

	return rating, nil
}

// decodeField は単一フィールドのJSON値をデコードする。
// 数値はjson.Numberとして保持する。nilまたは不正なJSONはnilを返す。
func decodeField(raw json.RawMessage) any {
	if raw == nil {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// isFalsy はJavaScriptのfalsy判定に相当する。
// 欠落チェックは元実装の !name / !message の挙動を踏襲するため、
// null・空文字列・false・数値0を欠落として扱う。
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 0
	default:
		return false
	}
}
