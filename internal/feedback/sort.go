package feedback

import (
	"strings"

	"github.com/hitoshi/feedback-board/internal/model"
)

// SortField は一覧取得のソート対象カラムを表す。
// SQL識別子はプレースホルダにバインドできないため、ORDER BY句には
// ここで定義された値のみが使用される（インジェクション境界）。
type SortField string

const (
	// SortByRating は評価値でのソート。
	SortByRating SortField = "rating"
	// SortByCreatedAt は作成日時でのソート（デフォルト）。
	SortByCreatedAt SortField = "created_at"
	// SortByName は投稿者名でのソート。
	SortByName SortField = "name"
)

// SortOrder はソート方向を表す。
type SortOrder string

const (
	// OrderAsc は昇順。
	OrderAsc SortOrder = "asc"
	// OrderDesc は降順（デフォルト）。
	OrderDesc SortOrder = "desc"
)

// Column はORDER BY句に埋め込むカラム名を返す。
// SortFieldはホワイトリスト検証済みの値のみ取りうる。
func (f SortField) Column() string {
	return string(f)
}

// SQL はORDER BY句に埋め込むソート方向（ASC/DESC）を返す。
func (o SortOrder) SQL() string {
	return strings.ToUpper(string(o))
}

// ParseSort はクエリパラメータのsortByとorderをホワイトリストに対して
// 検証する。空値にはデフォルト（created_at / desc）を適用する。
// orderは大文字小文字を区別しない。sortByの検証はorderの妥当性に
// かかわらず先に行われる。
func ParseSort(sortBy, order string) (SortField, SortOrder, error) {
	if sortBy == "" {
		sortBy = string(SortByCreatedAt)
	}
	if order == "" {
		order = string(OrderDesc)
	}

	var field SortField
	switch SortField(sortBy) {
	case SortByRating, SortByCreatedAt, SortByName:
		field = SortField(sortBy)
	default:
		return "", "", model.NewInvalidSortFieldError()
	}

	var dir SortOrder
	switch SortOrder(strings.ToLower(order)) {
	case OrderAsc, OrderDesc:
		dir = SortOrder(strings.ToLower(order))
	default:
		return "", "", model.NewInvalidOrderError()
	}

	return field, dir, nil
}
