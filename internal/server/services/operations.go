package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/common"
	"github.com/dmitrijs2005/opsapi/internal/dbx"
	"github.com/dmitrijs2005/opsapi/internal/server/config"
	"github.com/dmitrijs2005/opsapi/internal/server/models"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/repomanager"
)

// RecentActivityWindow is how far back Stats counts recent operations.
const RecentActivityWindow = 7 * 24 * time.Hour

type OperationService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

func NewOperationService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *OperationService {
	defaultLimit := cfg.DefaultListLimit
	if defaultLimit <= 0 {
		defaultLimit = common.DefaultListLimit
	}
	return &OperationService{
		db:           db,
		repomanager:  m,
		defaultLimit: defaultLimit,
		maxLimit:     cfg.MaxListLimit,
		now:          time.Now,
	}
}

// Record stores an operation of opType for userID with payload encoded as
// JSON. Object keys are written in sorted order, including for a
// json.RawMessage payload. A nil payload, an empty RawMessage or a JSON null
// is stored as an empty object.
func (s *OperationService) Record(ctx context.Context, userID int64, opType string, payload any) (int64, error) {
	if opType == "" {
		return 0, fmt.Errorf("%w: operation type is required", common.ErrorValidation)
	}

	data, err := encodePayload(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: payload is not JSON encodable: %w", common.ErrorValidation, err)
	}

	op := &models.Operation{
		UserID: userID,
		Type:   opType,
		Data:   string(data),
		Status: common.DefaultOperationStatus,
	}

	op, err = s.repomanager.Operations(s.db).Create(ctx, op)
	if err != nil {
		return 0, err
	}

	return op.ID, nil
}

func encodePayload(payload any) ([]byte, error) {
	if raw, ok := payload.(json.RawMessage); ok {
		payload = nil
		if len(bytes.TrimSpace(raw)) > 0 {
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.UseNumber()
			if err := dec.Decode(&payload); err != nil {
				return nil, err
			}
		}
	}
	if payload == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(payload)
}

// EffectiveLimit maps a requested listing size onto the configured bounds.
func (s *OperationService) EffectiveLimit(limit int) int {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit
}

// ListForUser returns the newest operations of userID, newest first.
func (s *OperationService) ListForUser(ctx context.Context, userID int64, limit int) ([]*models.Operation, error) {
	return s.repomanager.Operations(s.db).ListByUser(ctx, userID, s.EffectiveLimit(limit))
}

// Stats counts all operations of userID and those of the last
// RecentActivityWindow.
func (s *OperationService) Stats(ctx context.Context, userID int64) (*models.OperationStats, error) {
	since := s.now().Add(-RecentActivityWindow)

	// ReadOnly is only requested where the driver honours it.
	opts := &sql.TxOptions{ReadOnly: s.repomanager.Dialect() == dbx.DialectPostgres}

	var stats *models.OperationStats
	err := dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		stats, err = s.repomanager.Operations(tx).Stats(ctx, userID, since)
		return err
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}
