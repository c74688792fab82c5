package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

type RatingRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.Rating) error
  Save(ctx context.Context, tx *gorm.DB, row *types.Rating) error
  GetByUserAndBook(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) (*types.Rating, error)
  ListByBook(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) ([]*types.Rating, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Rating, error)
  DeleteByUserAndBook(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) error
  AggregateForBook(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) (float64, int, error)
}

type ratingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
  repoLog := baseLog.With("repo", "RatingRepo")
  return &ratingRepo{db: db, log: repoLog}
}

func (r *ratingRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Rating) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }
  return transaction.WithContext(ctx).Create(row).Error
}

func (r *ratingRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Rating) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }
  return transaction.WithContext(ctx).Omit("Book", "User").Save(row).Error
}

func (r *ratingRepo) GetByUserAndBook(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) (*types.Rating, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Rating
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND book_id = ?", userID, bookID).
    First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *ratingRepo) ListByBook(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) ([]*types.Rating, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Rating
  if bookID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("User").
    Where("book_id = ?", bookID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *ratingRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Rating, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Rating
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Book").
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *ratingRepo) DeleteByUserAndBook(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND book_id = ?", userID, bookID).
    Delete(&types.Rating{}).Error; err != nil {
    return err
  }
  return nil
}

// AggregateForBook recomputes the mean score and count over the book's
// current ratings. A book with no ratings aggregates to (0, 0).
func (r *ratingRepo) AggregateForBook(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) (float64, int, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var agg struct {
    Mean  *float64 `gorm:"column:mean"`
    Total int64    `gorm:"column:total"`
  }
  if err := transaction.WithContext(ctx).
    Model(&types.Rating{}).
    Select("AVG(score) AS mean, COUNT(id) AS total").
    Where("book_id = ?", bookID).
    Scan(&agg).Error; err != nil {
    return 0, 0, err
  }

  mean := 0.0
  if agg.Mean != nil {
    mean = *agg.Mean
  }
  return mean, int(agg.Total), nil
}
