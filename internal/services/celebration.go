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

// CelebrationResult summarizes the completion of a book: the user's rank
// before any podium bonus, the bonus applied (if the pre-bonus rank was on
// the podium), and the rank after. RankAfter is informational only, it never
// triggers a bonus by itself.
type CelebrationResult struct {
  RankBefore        int             `json:"rank_before"`
  RankAfter         int             `json:"rank_after"`
  TotalParticipants int             `json:"total_participants"`
  BonusAwarded      bool            `json:"bonus_awarded"`
  PodiumBonus       float64         `json:"podium_bonus"`
  PodiumPosition    int             `json:"podium_position"`
  TotalPoints       float64         `json:"total_points"`
  BooksCompleted    int             `json:"books_completed"`
  Progress          *types.Progress `json:"progress"`
}

type CelebrationService interface {
  Celebrate(ctx context.Context, userID, progressID uuid.UUID) (*CelebrationResult, error)
}

type celebrationService struct {
  db           *gorm.DB
  log          *logger.Logger
  progressRepo repos.ProgressRepo
  eventRepo    repos.ReadingEventRepo
  leaderboard  LeaderboardService
}

func NewCelebrationService(db *gorm.DB, log *logger.Logger, progressRepo repos.ProgressRepo, eventRepo repos.ReadingEventRepo, leaderboard LeaderboardService) CelebrationService {
  serviceLog := log.With("service", "CelebrationService")
  return &celebrationService{
    db:           db,
    log:          serviceLog,
    progressRepo: progressRepo,
    eventRepo:    eventRepo,
    leaderboard:  leaderboard,
  }
}

// Celebrate runs once per natural completion. It is not idempotent: a second
// call for the same completion double-awards the podium bonus, so the
// handler invokes it only on the completion transition reported by the
// tracker. The two rank reads are plain snapshots; concurrent point changes
// by other users can move the rank between them.
func (cs *celebrationService) Celebrate(ctx context.Context, userID, progressID uuid.UUID) (*CelebrationResult, error) {
  row, err := cs.progressRepo.GetByID(ctx, nil, progressID)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch progress: %w", err)
  }
  if row == nil || row.UserID != userID {
    return nil, ErrNotFound
  }

  rankBefore, total, err := cs.leaderboard.RankOf(ctx, userID)
  if err != nil {
    return nil, err
  }

  bonus, onPodium := scoring.PodiumBonus(rankBefore)
  if onPodium {
    if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
      row.Points = scoring.Round2(row.Points + bonus)
      if sErr := cs.progressRepo.Save(ctx, tx, row); sErr != nil {
        return fmt.Errorf("Failed to save podium bonus: %w", sErr)
      }
      payload, _ := json.Marshal(map[string]interface{}{
        "points_awarded": bonus,
        "position":       rankBefore,
      })
      bookID := row.BookID
      event := &types.ReadingEvent{
        UserID: userID,
        BookID: &bookID,
        Type:   types.ReadingEventPodiumBonus,
        Data:   datatypes.JSON(payload),
      }
      if _, eErr := cs.eventRepo.Create(ctx, tx, []*types.ReadingEvent{event}); eErr != nil {
        return fmt.Errorf("Failed to record podium event: %w", eErr)
      }
      return nil
    }); err != nil {
      return nil, err
    }
    cs.leaderboard.InvalidateStandings(ctx)
  }

  rankAfter, _, err := cs.leaderboard.RankOf(ctx, userID)
  if err != nil {
    return nil, err
  }

  totalPoints, completed, err := cs.userTotals(ctx, userID)
  if err != nil {
    return nil, err
  }

  result := &CelebrationResult{
    RankBefore:        rankBefore,
    RankAfter:         rankAfter,
    TotalParticipants: total,
    BonusAwarded:      onPodium,
    PodiumBonus:       bonus,
    TotalPoints:       totalPoints,
    BooksCompleted:    completed,
    Progress:          row,
  }
  if onPodium {
    result.PodiumPosition = rankBefore
  }
  return result, nil
}

func (cs *celebrationService) userTotals(ctx context.Context, userID uuid.UUID) (float64, int, error) {
  rows, err := cs.progressRepo.ListByUser(ctx, nil, userID, "")
  if err != nil {
    return 0, 0, fmt.Errorf("Failed to list progress for totals: %w", err)
  }
  var totalPoints float64
  completed := 0
  for _, p := range rows {
    totalPoints += p.Points
    if p.Status == types.ProgressStatusCompleted {
      completed++
    }
  }
  return scoring.Round2(totalPoints), completed, nil
}
