package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/feedback-board/internal/feedback"
	"github.com/hitoshi/feedback-board/internal/model"
)

// MySQLFeedbackRepo はMySQLを使用したフィードバックリポジトリ。
type MySQLFeedbackRepo struct {
	db *sql.DB
}

// NewMySQLFeedbackRepo はMySQLFeedbackRepoを生成する。
func NewMySQLFeedbackRepo(db *sql.DB) *MySQLFeedbackRepo {
	return &MySQLFeedbackRepo{db: db}
}

// Create はフィードバックを挿入し、採番されたIDで再取得して返す。
// 挿入と再取得は別文として実行される。2文の間で接続が失われると、
// 行は永続化済みだが呼び出し側にはエラーが返る（既知のギャップ）。
func (r *MySQLFeedbackRepo) Create(ctx context.Context, sub *model.Submission) (*model.FeedbackEntry, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback (name, message, rating) VALUES (?, ?, ?)`,
		sub.Name, sub.Message, sub.Rating,
	)
	if err != nil {
		return nil, model.NewStorageError("create", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, model.NewStorageError("create", err)
	}

	entry, err := r.findByID(ctx, id)
	if err != nil {
		return nil, model.NewStorageError("create", err)
	}

	return entry, nil
}

// findByID は指定IDのエントリを取得する。
func (r *MySQLFeedbackRepo) findByID(ctx context.Context, id int64) (*model.FeedbackEntry, error) {
	entry := &model.FeedbackEntry{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, message, rating, created_at, updated_at
		 FROM feedback WHERE id = ?`,
		id,
	).Scan(
		&entry.ID, &entry.Name, &entry.Message, &entry.Rating,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// List は全エントリを指定のソート順で返す。
// ORDER BY句はホワイトリスト検証済みの識別子のみから構成される。
// SQL識別子はプレースホルダにバインドできないため、ここが
// インジェクション安全性の境界になる。
func (r *MySQLFeedbackRepo) List(ctx context.Context, sortBy feedback.SortField, order feedback.SortOrder) ([]*model.FeedbackEntry, error) {
	query := fmt.Sprintf(
		`SELECT id, name, message, rating, created_at, updated_at
		 FROM feedback ORDER BY %s %s`,
		sortBy.Column(), order.SQL(),
	)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, model.NewStorageError("list", err)
	}
	defer rows.Close()

	entries := []*model.FeedbackEntry{}
	for rows.Next() {
		entry := &model.FeedbackEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.Name, &entry.Message, &entry.Rating,
			&entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, model.NewStorageError("list", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError("list", err)
	}

	return entries, nil
}

// Stats はフィードバック全体の集計と評価値ごとの分布を返す。
// エントリが1件もない場合、平均・最小・最大はnilになる。
func (r *MySQLFeedbackRepo) Stats(ctx context.Context) (*model.FeedbackStats, error) {
	stats := &model.FeedbackStats{
		RatingDistribution: []model.RatingCount{},
	}

	var avg sql.NullFloat64
	var minRating, maxRating sql.NullInt64

	err := r.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*) AS total_feedback,
			AVG(rating) AS average_rating,
			MIN(rating) AS min_rating,
			MAX(rating) AS max_rating,
			COUNT(CASE WHEN rating >= 4 THEN 1 END) AS positive_feedback,
			COUNT(CASE WHEN rating <= 2 THEN 1 END) AS negative_feedback
		 FROM feedback`,
	).Scan(
		&stats.TotalFeedback, &avg, &minRating, &maxRating,
		&stats.PositiveFeedback, &stats.NegativeFeedback,
	)
	if err != nil {
		return nil, model.NewStorageError("stats", err)
	}

	if avg.Valid {
		stats.AverageRating = &avg.Float64
	}
	if minRating.Valid {
		v := int(minRating.Int64)
		stats.MinRating = &v
	}
	if maxRating.Valid {
		v := int(maxRating.Int64)
		stats.MaxRating = &v
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT rating, COUNT(*) AS count
		 FROM feedback
		 GROUP BY rating
		 ORDER BY rating`,
	)
	if err != nil {
		return nil, model.NewStorageError("stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc model.RatingCount
		if err := rows.Scan(&rc.Rating, &rc.Count); err != nil {
			return nil, model.NewStorageError("stats", err)
		}
		stats.RatingDistribution = append(stats.RatingDistribution, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError("stats", err)
	}

	return stats, nil
}
