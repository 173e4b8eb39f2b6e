// Package web は埋め込み静的フロントエンドの配信を提供する。
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// Handler は埋め込み静的ファイルを配信するハンドラーを返す。
// ルート(/)へのアクセスはindex.htmlにフォールバックする。
func Handler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// embedディレクトリ構成が壊れている場合はビルド時の問題
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
