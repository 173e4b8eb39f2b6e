// Package database はMySQL接続とスキーマのブートストラップを提供する。
package database

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// maxOpenConns は接続プールの同時接続数上限。
// プールが枯渇した場合、呼び出し側は失敗せず待機する（待機キューは無制限）。
const maxOpenConns = 10

// Config はMySQL接続設定を保持する。
type Config struct {
	Host     string
	User     string
	Password string
	Name     string // データベース名
	Port     int
}

// dsn は指定データベース名のDSNを構築する。
// dbNameが空の場合はデータベース未選択の接続（CREATE DATABASE用）になる。
func (c Config) dsn(dbName string) string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	mc.DBName = dbName
	mc.ParseTime = true
	mc.Collation = "utf8mb4_unicode_ci"
	return mc.FormatDSN()
}

// open はDSNから接続プールを開き、接続上限を設定する。
// sql.Openは接続を試行しないため、実際の接続確認にはPingを使用すること。
func open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)

	return db, nil
}
