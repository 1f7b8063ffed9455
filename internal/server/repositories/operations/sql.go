// Package operations provides the SQL-backed operation ledger repository.
package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/common"
	"github.com/dmitrijs2005/opsapi/internal/dbx"
	"github.com/dmitrijs2005/opsapi/internal/server/models"
)

// SQLRepository implements Repository over a dbx.DBTX.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, op *models.Operation) (*models.Operation, error) {
	query :=
		`INSERT INTO api_operations (user_id, operation_type, data, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`

	var createdAt dbx.Timestamp
	err := r.db.QueryRowContext(ctx, query, op.UserID, op.Type, op.Data, op.Status).Scan(&op.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorStore, err)
	}

	op.CreatedAt = createdAt.Time
	return op, nil
}

// ListByUser orders by created_at and then id, both descending, so rows
// created within the same clock tick still come back newest first.
func (r *SQLRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.Operation, error) {
	query :=
		`SELECT id, user_id, operation_type, data, status, created_at FROM api_operations
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorStore, err)
	}
	defer rows.Close()

	result := make([]*models.Operation, 0)
	for rows.Next() {
		var op models.Operation
		var createdAt dbx.Timestamp
		if err := rows.Scan(&op.ID, &op.UserID, &op.Type, &op.Data, &op.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrorStore, err)
		}
		op.CreatedAt = createdAt.Time
		result = append(result, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorStore, err)
	}

	return result, nil
}

func (r *SQLRepository) Stats(ctx context.Context, userID int64, since time.Time) (*models.OperationStats, error) {
	query :=
		`SELECT COUNT(*), COUNT(CASE WHEN created_at >= $1 THEN 1 END) FROM api_operations
		 WHERE user_id = $2`

	stats := &models.OperationStats{}
	err := r.db.QueryRowContext(ctx, query, r.dialect.TimeArg(since), userID).Scan(&stats.Total, &stats.Recent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorStore, err)
	}

	return stats, nil
}
