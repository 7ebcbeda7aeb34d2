package pg

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
)

// PgtextToString converts pgtype.Text to string, NULL becomes ""
func PgtextToString(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// PgtextToStringPtr converts pgtype.Text to *string
func PgtextToStringPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

// PgtypeToTimePtr converts pgtype.Timestamp to *time.Time
func PgtypeToTimePtr(t pgtype.Timestamp) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

// PgtypeToInt64Ptr converts pgtype.Int8 to *int64
func PgtypeToInt64Ptr(i pgtype.Int8) *int64 {
	if !i.Valid {
		return nil
	}
	return &i.Int64
}

// PgtypeToLogLevel converts pgtype.Int4 to *domain.LogLevel
func PgtypeToLogLevel(i pgtype.Int4) *domain.LogLevel {
	if !i.Valid {
		return nil
	}
	level := domain.LogLevel(i.Int32)
	return &level
}
