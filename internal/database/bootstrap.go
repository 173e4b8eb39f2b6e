package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-sql-driver/mysql"
)

// createTableStmt はフィードバックテーブルの作成文。
// 評価値の範囲はバリデーターで保証されるが、スキーマ側でも防御的にCHECK制約を宣言する。
const createTableStmt = `
	CREATE TABLE IF NOT EXISTS feedback (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		rating INT NOT NULL CHECK (rating >= 1 AND rating <= 5),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

// secondaryIndexes は一覧・集計クエリ用のセカンダリインデックス。
// MySQLのCREATE INDEXはIF NOT EXISTSをサポートしないため、
// 再実行時の重複エラーはensureSchemaで吸収する。
var secondaryIndexes = []struct {
	name string
	stmt string
}{
	{"idx_rating", "CREATE INDEX idx_rating ON feedback (rating)"},
	{"idx_created_at", "CREATE INDEX idx_created_at ON feedback (created_at)"},
}

// Bootstrap はスキーマを冪等に初期化し、ランタイム用の接続プールを返す。
//
// 2段階で初期化する:
//  1. データベース未選択のプールで対象データベースを作成する
//  2. 対象データベースに接続し直したプールでテーブルとインデックスを作成する
//
// 接続失敗・データベース作成失敗・テーブル作成失敗は致命的エラーとして
// 返され、呼び出し側は起動を中止しなければならない。インデックス作成の
// 失敗は致命的ではない。成功時に返されるプールが以降の全リポジトリ操作で
// 使用される。
func Bootstrap(ctx context.Context, cfg Config) (*sql.DB, error) {
	adminDB, err := open(cfg.dsn(""))
	if err != nil {
		return nil, err
	}

	if err := ensureDatabase(ctx, adminDB, cfg.Name); err != nil {
		adminDB.Close()
		return nil, err
	}
	adminDB.Close()

	db, err := open(cfg.dsn(cfg.Name))
	if err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("database bootstrap completed",
		slog.String("database", cfg.Name),
	)

	return db, nil
}

// ensureDatabase は対象データベースが存在することを保証する。
// 接続確認も兼ねており、接続不能な場合はエラーを返す。
func ensureDatabase(ctx context.Context, adminDB *sql.DB, name string) error {
	if err := adminDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}

	slog.Info("database connection established")

	if _, err := adminDB.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}

	return nil
}

// ensureSchema はテーブルとセカンダリインデックスが存在することを保証する。
// テーブル作成の失敗は致命的。インデックス作成は、重複エラーなら
// 既存として扱い、それ以外の失敗も警告ログのみで続行する。
func ensureSchema(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTableStmt); err != nil {
		return fmt.Errorf("failed to create feedback table: %w", err)
	}

	slog.Info("feedback table created/verified")

	for _, idx := range secondaryIndexes {
		if _, err := db.ExecContext(ctx, idx.stmt); err != nil {
			if isDuplicateIndex(err) {
				slog.Info("index already exists", slog.String("index", idx.name))
				continue
			}
			slog.Warn("index creation failed",
				slog.String("index", idx.name),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// erDupKeyName はMySQLの「重複したキー名」エラー（ER_DUP_KEYNAME）。
const erDupKeyName = 1061

// isDuplicateIndex はブートストラップ再実行時に許容される
// 「インデックス名の重複」エラーかどうかを判定する。
// ドライバーのエラー分類はこの述語の背後に隠蔽する。
func isDuplicateIndex(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == erDupKeyName
}
