package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

type ReadingEventRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.ReadingEvent) ([]*types.ReadingEvent, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ReadingEvent, error)
}

type readingEventRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewReadingEventRepo(db *gorm.DB, baseLog *logger.Logger) ReadingEventRepo {
  repoLog := baseLog.With("repo", "ReadingEventRepo")
  return &readingEventRepo{db: db, log: repoLog}
}

func (r *readingEventRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ReadingEvent) ([]*types.ReadingEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.ReadingEvent{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *readingEventRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ReadingEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ReadingEvent
  if userID == uuid.Nil {
    return results, nil
  }
  if limit <= 0 {
    limit = 50
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
