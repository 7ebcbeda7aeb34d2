package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
	"github.com/jinford/log-indexer/internal/platform/database"
)

const getLaunch = `
SELECT id, project_id, name, number, mode, status, start_time, end_time
FROM launch
WHERE id = $1
`

// LaunchRepository はローンチの永続化アダプターです
type LaunchRepository struct {
	db database.DBTX
}

// NewLaunchRepository は新しいローンチリポジトリを作成します
func NewLaunchRepository(db database.DBTX) *LaunchRepository {
	return &LaunchRepository{db: db}
}

var _ domain.LaunchReader = (*LaunchRepository)(nil)

// GetByID はIDでローンチを取得します
func (r *LaunchRepository) GetByID(ctx context.Context, id int64) (*domain.Launch, error) {
	var (
		launch  domain.Launch
		mode    string
		status  string
		endTime pgtype.Timestamp
	)
	err := r.db.QueryRow(ctx, getLaunch, id).Scan(
		&launch.ID,
		&launch.ProjectID,
		&launch.Name,
		&launch.Number,
		&mode,
		&status,
		&launch.StartTime,
		&endTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError(domain.EntityLaunch, id)
		}
		return nil, fmt.Errorf("failed to get launch: %w", err)
	}

	launch.Mode = domain.LaunchMode(mode)
	launch.Status = domain.LaunchStatus(status)
	launch.EndTime = PgtypeToTimePtr(endTime)
	return &launch, nil
}
