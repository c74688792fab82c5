package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

type BookRepo interface {
  Create(ctx context.Context, tx *gorm.DB, books []*types.Book) ([]*types.Book, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Book, error)
  Search(ctx context.Context, tx *gorm.DB, query, order string) ([]*types.Book, error)
  Save(ctx context.Context, tx *gorm.DB, book *types.Book) error
  UpdateRatingAggregates(ctx context.Context, tx *gorm.DB, bookID uuid.UUID, meanRating float64, ratingCount int) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type bookRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
  repoLog := baseLog.With("repo", "BookRepo")
  return &bookRepo{db: db, log: repoLog}
}

var bookOrders = map[string]string{
  "title":        "title ASC",
  "-title":       "title DESC",
  "mean_rating":  "mean_rating ASC",
  "-mean_rating": "mean_rating DESC",
  "year":         "publication_year ASC",
  "-year":        "publication_year DESC",
}

func (r *bookRepo) Create(ctx context.Context, tx *gorm.DB, books []*types.Book) ([]*types.Book, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(books) == 0 {
    return []*types.Book{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&books).Error; err != nil {
    return nil, err
  }
  return books, nil
}

func (r *bookRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Book, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Book
  if len(ids) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Author").
    Preload("Publisher").
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// Search matches the title, author name or publisher name against query.
// An empty query lists every book. Unknown orders fall back to mean rating
// descending, the catalog's default.
func (r *bookRepo) Search(ctx context.Context, tx *gorm.DB, query, order string) ([]*types.Book, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  orderBy, ok := bookOrders[order]
  if !ok {
    orderBy = "mean_rating DESC"
  }

  q := transaction.WithContext(ctx).
    Model(&types.Book{}).
    Preload("Author").
    Preload("Publisher")
  if query != "" {
    like := "%" + query + "%"
    q = q.
      Joins("LEFT JOIN author ON author.id = book.author_id").
      Joins("LEFT JOIN publisher ON publisher.id = book.publisher_id").
      Where("book.title LIKE ? OR author.name LIKE ? OR publisher.name LIKE ?", like, like, like)
  }

  var results []*types.Book
  if err := q.Order(orderBy).Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *bookRepo) Save(ctx context.Context, tx *gorm.DB, book *types.Book) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if book == nil {
    return nil
  }
  return transaction.WithContext(ctx).Save(book).Error
}

func (r *bookRepo) UpdateRatingAggregates(ctx context.Context, tx *gorm.DB, bookID uuid.UUID, meanRating float64, ratingCount int) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Model(&types.Book{}).
    Where("id = ?", bookID).
    Updates(map[string]interface{}{
      "mean_rating":  meanRating,
      "rating_count": ratingCount,
    }).Error
}

func (r *bookRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Book{}).Error; err != nil {
    return err
  }
  return nil
}
