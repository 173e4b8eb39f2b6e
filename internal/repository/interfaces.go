// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/feedback-board/internal/feedback"
	"github.com/hitoshi/feedback-board/internal/model"
)

// FeedbackRepository はフィードバックデータの永続化インターフェース。
type FeedbackRepository interface {
	// Create はバリデーション済みの投稿を挿入し、採番されたIDで
	// 再取得したエントリを返す。失敗時はStorageErrorを返す。
	//
	// 挿入と再取得はトランザクションで括られていない。2文の間に接続が
	// 失われた場合、行は存在するが呼び出し側には500が返る（既知のギャップ）。
	Create(ctx context.Context, sub *model.Submission) (*model.FeedbackEntry, error)

	// List は全エントリを指定フィールド・方向で並べて返す。
	// ソートパラメータはホワイトリスト検証済みであること。
	List(ctx context.Context, sortBy feedback.SortField, order feedback.SortOrder) ([]*model.FeedbackEntry, error)

	// Stats はフィードバック全体の集計を返す。
	Stats(ctx context.Context) (*model.FeedbackStats, error)
}
