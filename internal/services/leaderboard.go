package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/cache"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/repos"
)

const (
  standingsCacheKey = "leaderboard:standings"
  standingsCacheTTL = 30 * time.Second
  standingsLimit    = 50
)

// StandingsEntry is one leaderboard row for display.
type StandingsEntry struct {
  Rank        int       `json:"rank"`
  UserID      uuid.UUID `json:"user_id"`
  Name        string    `json:"name"`
  TotalPoints float64   `json:"total_points"`
}

type LeaderboardService interface {
  // RankOf returns the user's 1-based rank among users with positive point
  // totals and the participant count. Rank 0 means the user is unranked.
  RankOf(ctx context.Context, userID uuid.UUID) (int, int, error)
  Top(ctx context.Context, limit int) ([]StandingsEntry, error)
  InvalidateStandings(ctx context.Context)
}

type leaderboardService struct {
  db           *gorm.DB
  log          *logger.Logger
  progressRepo repos.ProgressRepo
  userRepo     repos.UserRepo
  redis        *cache.RedisService
}

func NewLeaderboardService(db *gorm.DB, log *logger.Logger, progressRepo repos.ProgressRepo, userRepo repos.UserRepo, redis *cache.RedisService) LeaderboardService {
  serviceLog := log.With("service", "LeaderboardService")
  return &leaderboardService{
    db:           db,
    log:          serviceLog,
    progressRepo: progressRepo,
    userRepo:     userRepo,
    redis:        redis,
  }
}

// RankOf always reads live totals: the celebration flow depends on the rank
// moving between its before and after queries.
func (ls *leaderboardService) RankOf(ctx context.Context, userID uuid.UUID) (int, int, error) {
  totals, err := ls.progressRepo.PositivePointTotals(ctx, nil)
  if err != nil {
    return 0, 0, fmt.Errorf("Failed to compute point totals: %w", err)
  }
  for idx, row := range totals {
    if row.UserID == userID {
      return idx + 1, len(totals), nil
    }
  }
  return 0, len(totals), nil
}

func (ls *leaderboardService) Top(ctx context.Context, limit int) ([]StandingsEntry, error) {
  if limit <= 0 || limit > standingsLimit {
    limit = standingsLimit
  }

  if ls.redis != nil {
    if raw, ok := ls.redis.Get(ctx, standingsCacheKey); ok {
      var cached []StandingsEntry
      if err := json.Unmarshal([]byte(raw), &cached); err == nil {
        if len(cached) > limit {
          cached = cached[:limit]
        }
        return cached, nil
      }
      ls.log.Warn("Discarding unreadable standings cache entry")
    }
  }

  entries, err := ls.buildStandings(ctx)
  if err != nil {
    return nil, err
  }

  if ls.redis != nil {
    if raw, mErr := json.Marshal(entries); mErr == nil {
      ls.redis.Set(ctx, standingsCacheKey, string(raw), standingsCacheTTL)
    }
  }

  if len(entries) > limit {
    entries = entries[:limit]
  }
  return entries, nil
}

func (ls *leaderboardService) InvalidateStandings(ctx context.Context) {
  if ls.redis != nil {
    ls.redis.Delete(ctx, standingsCacheKey)
  }
}

func (ls *leaderboardService) buildStandings(ctx context.Context) ([]StandingsEntry, error) {
  totals, err := ls.progressRepo.PositivePointTotals(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to compute point totals: %w", err)
  }
  if len(totals) > standingsLimit {
    totals = totals[:standingsLimit]
  }

  userIDs := make([]uuid.UUID, 0, len(totals))
  for _, row := range totals {
    userIDs = append(userIDs, row.UserID)
  }
  users, err := ls.userRepo.GetByIDs(ctx, nil, userIDs)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch ranked users: %w", err)
  }
  namesByID := make(map[uuid.UUID]string, len(users))
  for _, u := range users {
    namesByID[u.ID] = u.FirstName + " " + u.LastName
  }

  entries := make([]StandingsEntry, 0, len(totals))
  for idx, row := range totals {
    entries = append(entries, StandingsEntry{
      Rank:        idx + 1,
      UserID:      row.UserID,
      Name:        namesByID[row.UserID],
      TotalPoints: row.TotalPoints,
    })
  }
  return entries, nil
}
