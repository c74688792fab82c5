package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/repos"
  "github.com/mlisboa17/leiabem-backend/internal/scoring"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

// ProfileStats are the reading statistics shown on the user's profile.
type ProfileStats struct {
  TotalBooks      int     `json:"total_books"`
  BooksCompleted  int     `json:"books_completed"`
  BooksReading    int     `json:"books_reading"`
  TotalPoints     float64 `json:"total_points"`
  TotalSessions   int     `json:"total_sessions"`
  LongestStreak   int     `json:"longest_streak"`
  TotalRatings    int     `json:"total_ratings"`
  MeanScoreGiven  float64 `json:"mean_score_given"`
}

type UserService interface {
  GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
  ProfileStats(ctx context.Context, userID uuid.UUID) (*ProfileStats, error)
}

type userService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  progressRepo repos.ProgressRepo
  ratingRepo   repos.RatingRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, progressRepo repos.ProgressRepo, ratingRepo repos.RatingRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    progressRepo: progressRepo,
    ratingRepo:   ratingRepo,
  }
}

func (us *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  if userID == uuid.Nil {
    return nil, ErrNotFound
  }
  found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("Error fetching user: %w", err)
  }
  if len(found) == 0 {
    return nil, ErrNotFound
  }
  return found[0], nil
}

func (us *userService) ProfileStats(ctx context.Context, userID uuid.UUID) (*ProfileStats, error) {
  progresses, err := us.progressRepo.ListByUser(ctx, nil, userID, "")
  if err != nil {
    return nil, fmt.Errorf("Failed to list progress: %w", err)
  }

  stats := &ProfileStats{TotalBooks: len(progresses)}
  for _, p := range progresses {
    stats.TotalPoints += p.Points
    stats.TotalSessions += p.SessionCount
    if p.LongestStreakDays > stats.LongestStreak {
      stats.LongestStreak = p.LongestStreakDays
    }
    switch p.Status {
    case types.ProgressStatusCompleted:
      stats.BooksCompleted++
    case types.ProgressStatusReading:
      stats.BooksReading++
    }
  }
  stats.TotalPoints = scoring.Round2(stats.TotalPoints)

  ratings, err := us.ratingRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list ratings: %w", err)
  }
  stats.TotalRatings = len(ratings)
  if len(ratings) > 0 {
    sum := 0
    for _, r := range ratings {
      sum += r.Score
    }
    stats.MeanScoreGiven = scoring.Round2(float64(sum) / float64(len(ratings)))
  }
  return stats, nil
}
