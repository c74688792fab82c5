package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

type PublisherRepo interface {
  Create(ctx context.Context, tx *gorm.DB, publishers []*types.Publisher) ([]*types.Publisher, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Publisher, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Publisher, error)
  Save(ctx context.Context, tx *gorm.DB, publisher *types.Publisher) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type publisherRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPublisherRepo(db *gorm.DB, baseLog *logger.Logger) PublisherRepo {
  repoLog := baseLog.With("repo", "PublisherRepo")
  return &publisherRepo{db: db, log: repoLog}
}

func (r *publisherRepo) Create(ctx context.Context, tx *gorm.DB, publishers []*types.Publisher) ([]*types.Publisher, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(publishers) == 0 {
    return []*types.Publisher{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&publishers).Error; err != nil {
    return nil, err
  }
  return publishers, nil
}

func (r *publisherRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Publisher, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Publisher
  if len(ids) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *publisherRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Publisher, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Publisher
  if err := transaction.WithContext(ctx).
    Order("name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *publisherRepo) Save(ctx context.Context, tx *gorm.DB, publisher *types.Publisher) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if publisher == nil {
    return nil
  }
  return transaction.WithContext(ctx).Save(publisher).Error
}

func (r *publisherRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Publisher{}).Error; err != nil {
    return err
  }
  return nil
}
