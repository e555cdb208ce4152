package commerce

import (
	"errors"
	"fmt"
	"net/http"
)

// オペレーション種別の指定ミスはプログラマーのバグなので、
// 回復可能なエラーとは区別する。
var ErrInvalidOperation = errors.New("invalid operation type")

// HTTPError はコーディネーターの操作失敗。
// 外側の層がそのままクライアントエラーに変換できるようステータスを持つ。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func errNotFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

func errBadRequest(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}
