package indexer

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError はアナライザーAPIのエラーレスポンスを表します
// 型アサーションではなく IsNotFound などの判定関数で検査してください
type APIError struct {
	operation  string
	statusCode int
	message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.operation, e.statusCode, e.message)
}

func newAPIError(operation string, statusCode int, message string) *APIError {
	return &APIError{
		operation:  operation,
		statusCode: statusCode,
		message:    message,
	}
}

// StatusCode はHTTPステータスコードを返します
func (e *APIError) StatusCode() int { return e.statusCode }

// Message はエラーメッセージを返します
func (e *APIError) Message() string { return e.message }

// Operation は失敗したAPI呼び出しの説明を返します
func (e *APIError) Operation() string { return e.operation }

// IsNotFound はerrがHTTP 404のAPIエラーかどうかを判定します
func IsNotFound(err error) bool { return HasStatusCode(err, http.StatusNotFound) }

// HasStatusCode はerrが指定HTTPステータスのAPIエラーかどうかを判定します
func HasStatusCode(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.statusCode == code
}
