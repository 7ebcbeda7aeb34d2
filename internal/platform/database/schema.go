package database

import _ "embed"

// Schema はアプリケーションが参照するテーブル定義です
// 統合テストでのデータベース初期化に使用します
//
//go:embed schema.sql
var Schema string
