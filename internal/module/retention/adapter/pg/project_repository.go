package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jinford/log-indexer/internal/module/retention/domain"
	"github.com/jinford/log-indexer/internal/platform/database"
)

// ProjectRepository はプロジェクト一覧の取得アダプターです
type ProjectRepository struct {
	db database.DBTX
}

// NewProjectRepository は新しいプロジェクトリポジトリを作成します
func NewProjectRepository(db database.DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var _ domain.ProjectLister = (*ProjectRepository)(nil)

// ListProjectIDs は全プロジェクトのIDを返します
func (r *ProjectRepository) ListProjectIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM project ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan project ids: %w", err)
	}
	return ids, nil
}
