// Package storage は添付ファイル本体を保持するバイナリストアの実装です
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jinford/log-indexer/internal/module/retention/domain"
)

// FileSystemStore はローカルディレクトリ上のバイナリストアです
// オブジェクトIDはルートからの相対パスとして扱います
type FileSystemStore struct {
	root string
}

var _ domain.BinaryStore = (*FileSystemStore)(nil)

// NewFileSystemStore は新しいFileSystemStoreを作成します
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if root == "" {
		return nil, errors.New("storage root is required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat storage root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage root is not a directory: %s", root)
	}
	return &FileSystemStore{root: root}, nil
}

// Delete はオブジェクトを削除します
func (s *FileSystemStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(id)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrBinaryNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to remove binary: %w", err)
	}
	return nil
}

// path はIDをルート配下のパスに変換します。ルート外を指すIDは拒否します
func (s *FileSystemStore) path(id string) (string, error) {
	rel := filepath.FromSlash(id)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("invalid binary id: %q", id)
	}
	return filepath.Join(s.root, rel), nil
}
