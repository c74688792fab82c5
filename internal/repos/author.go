package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

type AuthorRepo interface {
  Create(ctx context.Context, tx *gorm.DB, authors []*types.Author) ([]*types.Author, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Author, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Author, error)
  Save(ctx context.Context, tx *gorm.DB, author *types.Author) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type authorRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAuthorRepo(db *gorm.DB, baseLog *logger.Logger) AuthorRepo {
  repoLog := baseLog.With("repo", "AuthorRepo")
  return &authorRepo{db: db, log: repoLog}
}

func (r *authorRepo) Create(ctx context.Context, tx *gorm.DB, authors []*types.Author) ([]*types.Author, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(authors) == 0 {
    return []*types.Author{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&authors).Error; err != nil {
    return nil, err
  }
  return authors, nil
}

func (r *authorRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Author, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Author
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

func (r *authorRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Author, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Author
  if err := transaction.WithContext(ctx).
    Order("name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *authorRepo) Save(ctx context.Context, tx *gorm.DB, author *types.Author) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if author == nil {
    return nil
  }
  return transaction.WithContext(ctx).Save(author).Error
}

func (r *authorRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Author{}).Error; err != nil {
    return err
  }
  return nil
}
