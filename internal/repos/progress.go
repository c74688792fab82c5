package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

// UserPointsTotal is one leaderboard row: a user and the sum of points across
// all their progress records.
type UserPointsTotal struct {
  UserID      uuid.UUID `gorm:"column:user_id"`
  TotalPoints float64   `gorm:"column:total_points"`
}

type ProgressRepo interface {
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Progress, error)
  GetByUserAndBook(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) (*types.Progress, error)
  GetOrCreate(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) (*types.Progress, bool, error)
  Save(ctx context.Context, tx *gorm.DB, row *types.Progress) error
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.Progress, error)
  PositivePointTotals(ctx context.Context, tx *gorm.DB) ([]UserPointsTotal, error)
}

type progressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
  repoLog := baseLog.With("repo", "ProgressRepo")
  return &progressRepo{db: db, log: repoLog}
}

func (r *progressRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Progress
  err := transaction.WithContext(ctx).
    Preload("Book").
    Where("id = ?", id).
    First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *progressRepo) GetByUserAndBook(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) (*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Progress
  err := transaction.WithContext(ctx).
    Preload("Book").
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

// GetOrCreate returns the (user, book) progress row, creating it with
// READING status and zeroed counters when absent. The bool reports creation.
func (r *progressRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) (*types.Progress, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  existing, err := r.GetByUserAndBook(ctx, transaction, userID, bookID)
  if err != nil {
    return nil, false, err
  }
  if existing != nil {
    return existing, false, nil
  }

  row := &types.Progress{
    UserID: userID,
    BookID: bookID,
    Status: types.ProgressStatusReading,
  }
  if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
    return nil, false, err
  }
  return row, true, nil
}

func (r *progressRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Progress) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }
  // Save would try to upsert the preloaded Book association as well.
  return transaction.WithContext(ctx).Omit("Book", "User").Save(row).Error
}

func (r *progressRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Progress
  if userID == uuid.Nil {
    return results, nil
  }

  q := transaction.WithContext(ctx).
    Preload("Book").
    Where("user_id = ?", userID)
  if status != "" {
    q = q.Where("status = ?", status)
  }

  if err := q.Order("updated_at DESC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// PositivePointTotals returns every user with a positive points sum, ordered
// by total descending. Ties fall back to user id so the order is stable.
func (r *progressRepo) PositivePointTotals(ctx context.Context, tx *gorm.DB) ([]UserPointsTotal, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []UserPointsTotal
  if err := transaction.WithContext(ctx).
    Model(&types.Progress{}).
    Select("user_id, SUM(points) AS total_points").
    Group("user_id").
    Having("SUM(points) > 0").
    Order("total_points DESC, user_id ASC").
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
