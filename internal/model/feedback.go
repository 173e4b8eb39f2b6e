// Package model はドメインモデルを定義する。
package model

import "time"

// フィードバックのフィールド制約。バリデーターとDBスキーマの両方で使用する。
const (
	// MaxNameLength はトリム後のnameの最大文字数。
	MaxNameLength = 255
	// MaxMessageLength はトリム後のmessageの最大文字数。
	MaxMessageLength = 10000
	// MinRating は評価の下限値。
	MinRating = 1
	// MaxRating は評価の上限値。
	MaxRating = 5
)

// FeedbackEntry は永続化されたフィードバックエントリを表す。
// IDはストレージがAUTO_INCREMENTで採番し、作成後は不変。
type FeedbackEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Submission はバリデーション済み・正規化済みの投稿データを表す。
// NameとMessageはトリム済みで、Ratingは[MinRating, MaxRating]の整数。
type Submission struct {
	Name    string
	Message string
	Rating  int
}

// RatingCount は評価値ごとの件数を表す。
type RatingCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// FeedbackStats はフィードバック全体の集計を表す。
// エントリが1件もない場合、AverageRating/MinRating/MaxRatingはnilになる。
type FeedbackStats struct {
	TotalFeedback      int64         `json:"total_feedback"`
	AverageRating      *float64      `json:"average_rating"`
	MinRating          *int          `json:"min_rating"`
	MaxRating          *int          `json:"max_rating"`
	PositiveFeedback   int64         `json:"positive_feedback"`
	NegativeFeedback   int64         `json:"negative_feedback"`
	RatingDistribution []RatingCount `json:"rating_distribution"`
}
