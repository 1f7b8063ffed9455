package operations

import (
	"context"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/server/models"
)

// Repository persists the operation ledger.
type Repository interface {
	// Create appends op and fills in ID and CreatedAt.
	Create(ctx context.Context, op *models.Operation) (*models.Operation, error)
	// ListByUser returns at most limit operations of userID, newest first.
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.Operation, error)
	// Stats counts all operations of userID and those created at or after since.
	Stats(ctx context.Context, userID int64, since time.Time) (*models.OperationStats, error)
}
