package services

import (
  "context"
  "encoding/json"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/repos"
  "github.com/mlisboa17/leiabem-backend/internal/scoring"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

type RatingService interface {
  UpsertRating(ctx context.Context, userID, bookID uuid.UUID, score int, comment string) (*types.Rating, bool, error)
  DeleteRating(ctx context.Context, userID, bookID uuid.UUID) error
  ListForBook(ctx context.Context, bookID uuid.UUID) ([]*types.Rating, error)
}

type ratingService struct {
  db            *gorm.DB
  log           *logger.Logger
  ratingRepo    repos.RatingRepo
  bookRepo      repos.BookRepo
  progressRepo  repos.ProgressRepo
  eventRepo     repos.ReadingEventRepo
  standings     StandingsInvalidator
}

func NewRatingService(db *gorm.DB, log *logger.Logger, ratingRepo repos.RatingRepo, bookRepo repos.BookRepo, progressRepo repos.ProgressRepo, eventRepo repos.ReadingEventRepo, standings StandingsInvalidator) RatingService {
  serviceLog := log.With("service", "RatingService")
  return &ratingService{
    db:           db,
    log:          serviceLog,
    ratingRepo:   ratingRepo,
    bookRepo:     bookRepo,
    progressRepo: progressRepo,
    eventRepo:    eventRepo,
    standings:    standings,
  }
}

// UpsertRating creates or updates the acting user's rating for a book.
// Only completed books may be rated. A newly created rating grants the
// one-time first-rating bonus to the user's progress on that book. The bool
// reports creation.
func (rs *ratingService) UpsertRating(ctx context.Context, userID, bookID uuid.UUID, score int, comment string) (*types.Rating, bool, error) {
  if score < 1 || score > 5 {
    return nil, false, ErrOutOfRangeRating
  }

  books, err := rs.bookRepo.GetByIDs(ctx, nil, []uuid.UUID{bookID})
  if err != nil {
    return nil, false, fmt.Errorf("Failed to fetch book: %w", err)
  }
  if len(books) == 0 {
    return nil, false, ErrNotFound
  }

  progress, err := rs.progressRepo.GetByUserAndBook(ctx, nil, userID, bookID)
  if err != nil {
    return nil, false, fmt.Errorf("Failed to fetch progress: %w", err)
  }
  if progress == nil || progress.Status != types.ProgressStatusCompleted {
    return nil, false, ErrRatingNotAllowed
  }

  var rating *types.Rating
  var created bool
  if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, gErr := rs.ratingRepo.GetByUserAndBook(ctx, tx, userID, bookID)
    if gErr != nil {
      return fmt.Errorf("Failed to fetch rating: %w", gErr)
    }

    if existing != nil {
      existing.Score = score
      existing.Comment = comment
      if sErr := rs.ratingRepo.Save(ctx, tx, existing); sErr != nil {
        return fmt.Errorf("Failed to update rating: %w", sErr)
      }
      rating = existing
    } else {
      rating = &types.Rating{
        UserID:  userID,
        BookID:  bookID,
        Score:   score,
        Comment: comment,
      }
      if cErr := rs.ratingRepo.Create(ctx, tx, rating); cErr != nil {
        return fmt.Errorf("Failed to create rating: %w", cErr)
      }
      created = true
      if bErr := rs.grantFirstRatingBonus(ctx, tx, userID, bookID); bErr != nil {
        return bErr
      }
    }

    return rs.recomputeBookAggregates(ctx, tx, bookID)
  }); err != nil {
    return nil, false, err
  }

  if created && rs.standings != nil {
    rs.standings.InvalidateStandings(ctx)
  }
  return rating, created, nil
}

func (rs *ratingService) DeleteRating(ctx context.Context, userID, bookID uuid.UUID) error {
  existing, err := rs.ratingRepo.GetByUserAndBook(ctx, nil, userID, bookID)
  if err != nil {
    return fmt.Errorf("Failed to fetch rating: %w", err)
  }
  if existing == nil {
    return ErrNotFound
  }

  return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if dErr := rs.ratingRepo.DeleteByUserAndBook(ctx, tx, userID, bookID); dErr != nil {
      return fmt.Errorf("Failed to delete rating: %w", dErr)
    }
    return rs.recomputeBookAggregates(ctx, tx, bookID)
  })
}

func (rs *ratingService) ListForBook(ctx context.Context, bookID uuid.UUID) ([]*types.Rating, error) {
  return rs.ratingRepo.ListByBook(ctx, nil, bookID)
}

// grantFirstRatingBonus adds the one-time rating bonus to the user's
// progress on the book, creating the row when absent.
func (rs *ratingService) grantFirstRatingBonus(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) error {
  progress, _, err := rs.progressRepo.GetOrCreate(ctx, tx, userID, bookID)
  if err != nil {
    return fmt.Errorf("Failed to get or create progress for rating bonus: %w", err)
  }
  progress.Points = scoring.Round2(progress.Points + scoring.FirstRatingBonus)
  if err := rs.progressRepo.Save(ctx, tx, progress); err != nil {
    return fmt.Errorf("Failed to save rating bonus: %w", err)
  }

  payload, _ := json.Marshal(map[string]interface{}{
    "points_awarded": scoring.FirstRatingBonus,
  })
  bID := bookID
  event := &types.ReadingEvent{
    UserID: userID,
    BookID: &bID,
    Type:   types.ReadingEventRatingBonus,
    Data:   datatypes.JSON(payload),
  }
  if _, err := rs.eventRepo.Create(ctx, tx, []*types.ReadingEvent{event}); err != nil {
    return fmt.Errorf("Failed to record rating bonus event: %w", err)
  }
  return nil
}

// recomputeBookAggregates rebuilds mean_rating and rating_count from the
// rating rows, never from deltas, and persists only when a value changed.
func (rs *ratingService) recomputeBookAggregates(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) error {
  mean, count, err := rs.ratingRepo.AggregateForBook(ctx, tx, bookID)
  if err != nil {
    return fmt.Errorf("Failed to aggregate ratings: %w", err)
  }
  mean = scoring.Round2(mean)

  books, err := rs.bookRepo.GetByIDs(ctx, tx, []uuid.UUID{bookID})
  if err != nil {
    return fmt.Errorf("Failed to fetch book for aggregates: %w", err)
  }
  if len(books) == 0 {
    return ErrNotFound
  }
  book := books[0]

  if scoring.Round2(book.MeanRating) == mean && book.RatingCount == count {
    return nil
  }
  if err := rs.bookRepo.UpdateRatingAggregates(ctx, tx, bookID, mean, count); err != nil {
    return fmt.Errorf("Failed to update book aggregates: %w", err)
  }
  return nil
}
