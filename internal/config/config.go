// Package config は環境変数からのアプリケーション設定読み込みを提供する。
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     int

	// Server
	ServerPort string

	// Environment: "development" または "production"
	Env string

	// Rate Limit
	RateLimitPerMinute int

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// カレントディレクトリに.envファイルがあれば先に読み込む（無ければ無視）。
// すべての項目にデフォルト値があるため、エラーは返さない。
func Load() *Config {
	// .envはローカル開発用。本番では環境変数を直接設定する。
	_ = godotenv.Load()

	return &Config{
		DBHost:             getEnvString("DB_HOST", "localhost"),
		DBUser:             getEnvString("DB_USER", "root"),
		DBPassword:         getEnvString("DB_PASSWORD", ""),
		DBName:             getEnvString("DB_NAME", "feedback_board"),
		DBPort:             getEnvInt("DB_PORT", 3306),
		ServerPort:         getEnvString("PORT", "3100"),
		Env:                loadEnvName(),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		CORSAllowedOrigin:  getEnvString("CORS_ALLOWED_ORIGIN", "*"),
	}
}

// IsDevelopment はdevelopmentモードかどうかを返す。
// developmentモードでは500レスポンスに内部エラーメッセージを含める。
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// loadEnvName は実行環境名を読み込む。
// APP_ENVを優先し、未設定の場合は移行前のデプロイとの互換のためNODE_ENVを参照する。
func loadEnvName() string {
	if v := os.Getenv("APP_ENV"); v != "" {
		return v
	}
	return getEnvString("NODE_ENV", "production")
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}
