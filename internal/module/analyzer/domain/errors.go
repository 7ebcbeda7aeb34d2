package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound は参照されたエンティティが存在しないことを表します
	ErrNotFound = errors.New("not found")

	// ErrIndexingFailed はインデックス処理の失敗を表す汎用エラーです
	ErrIndexingFailed = errors.New("indexing failed")
)

// Entity はNotFoundErrorで報告するエンティティ種別です
type Entity string

const (
	EntityLaunch   Entity = "launch"
	EntityTestItem Entity = "test item"
	EntityLog      Entity = "log"
	EntityProject  Entity = "project"
)

// NotFoundError はエンティティとIDを伴うNotFoundエラーです
type NotFoundError struct {
	Entity Entity
	ID     int64
}

// NewNotFoundError は新しいNotFoundErrorを作成します
func NewNotFoundError(entity Entity, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%d' not found", e.Entity, e.ID)
}

// Is はerrors.Is(err, ErrNotFound)を満たします
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound はerrがNotFoundエラーかどうかを判定します
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IndexingError はインデックス処理中の失敗を呼び出し元へ伝えるエラーです
type IndexingError struct {
	ProjectID int64
	Err       error
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("indexing failed for project %d: %v", e.ProjectID, e.Err)
}

func (e *IndexingError) Unwrap() error {
	return e.Err
}

// Is はerrors.Is(err, ErrIndexingFailed)を満たします
func (e *IndexingError) Is(target error) bool {
	return target == ErrIndexingFailed
}
