package indexer

import "net/http"

// BatchIndexRS はインデックスAPIのレスポンスです
type BatchIndexRS struct {
	Took   int64         `json:"took"`
	Errors bool          `json:"errors"`
	Items  []IndexRSItem `json:"items"`
}

// IndexRSItem はドキュメント単位の結果です
type IndexRSItem struct {
	Index IndexRSIndex `json:"index"`
}

// IndexRSIndex はドキュメント単位の結果の詳細です
type IndexRSIndex struct {
	ID     string `json:"_id"`
	Index  string `json:"_index"`
	Status int    `json:"status"`
}

// Created は作成されたドキュメント数を返します
func (rs BatchIndexRS) Created() int64 {
	var n int64
	for _, item := range rs.Items {
		if item.Index.Status == http.StatusCreated {
			n++
		}
	}
	return n
}

// Failed は作成されなかったドキュメント数を返します
func (rs BatchIndexRS) Failed() int64 {
	return int64(len(rs.Items)) - rs.Created()
}

// CleanIndexRQ はインデックスからのドキュメント削除リクエストです
type CleanIndexRQ struct {
	Project int64   `json:"project"`
	IDs     []int64 `json:"ids"`
}

// ErrorRS はアナライザーのエラーレスポンスです
type ErrorRS struct {
	Message string `json:"message"`
}
