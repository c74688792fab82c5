package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/repos"
  "github.com/mlisboa17/leiabem-backend/internal/scoring"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

// StandingsInvalidator drops any cached leaderboard standings. Every service
// that mutates points calls it after committing.
type StandingsInvalidator interface {
  InvalidateStandings(ctx context.Context)
}

// SessionResult reports one registered reading session.
type SessionResult struct {
  PointsAwarded   int             `json:"points_awarded"`
  JustCompleted   bool            `json:"just_completed"`
  Progress        *types.Progress `json:"progress"`
}

type ProgressService interface {
  AddToLibrary(ctx context.Context, userID, bookID uuid.UUID) (*types.Progress, bool, error)
  UpdateByPage(ctx context.Context, userID, progressID uuid.UUID, newPage int) (*types.Progress, bool, error)
  RegisterSession(ctx context.Context, userID, progressID uuid.UUID, pagesRead int, at time.Time) (*SessionResult, error)
  SetStatus(ctx context.Context, userID, progressID uuid.UUID, status string) (*types.Progress, bool, error)
  ListForUser(ctx context.Context, userID uuid.UUID, status string) ([]*types.Progress, error)
}

type progressService struct {
  db            *gorm.DB
  log           *logger.Logger
  progressRepo  repos.ProgressRepo
  bookRepo      repos.BookRepo
  eventRepo     repos.ReadingEventRepo
  standings     StandingsInvalidator
}

func NewProgressService(db *gorm.DB, log *logger.Logger, progressRepo repos.ProgressRepo, bookRepo repos.BookRepo, eventRepo repos.ReadingEventRepo, standings StandingsInvalidator) ProgressService {
  serviceLog := log.With("service", "ProgressService")
  return &progressService{
    db:           db,
    log:          serviceLog,
    progressRepo: progressRepo,
    bookRepo:     bookRepo,
    eventRepo:    eventRepo,
    standings:    standings,
  }
}

func (ps *progressService) AddToLibrary(ctx context.Context, userID, bookID uuid.UUID) (*types.Progress, bool, error) {
  books, err := ps.bookRepo.GetByIDs(ctx, nil, []uuid.UUID{bookID})
  if err != nil {
    return nil, false, fmt.Errorf("Failed to fetch book: %w", err)
  }
  if len(books) == 0 {
    return nil, false, ErrNotFound
  }

  var row *types.Progress
  var created bool
  if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    r, c, gErr := ps.progressRepo.GetOrCreate(ctx, tx, userID, bookID)
    if gErr != nil {
      return fmt.Errorf("Failed to get or create progress: %w", gErr)
    }
    row, created = r, c
    return nil
  }); err != nil {
    return nil, false, err
  }
  return row, created, nil
}

// applyPageUpdate runs the page-update rules against an in-memory progress
// row. Points are fully recomputed from the page position, overwriting any
// session, streak or podium points previously added to this row. That
// mirrors the original scoring engine and is the documented trade-off of
// keeping a single points column.
func applyPageUpdate(row *types.Progress, pageCount, newPage int) (bool, error) {
  if row.Status == types.ProgressStatusCompleted {
    return false, ErrAlreadyCompleted
  }

  if newPage < 0 {
    newPage = 0
  }
  row.CurrentPage = newPage
  row.PercentComplete = scoring.PercentComplete(newPage, pageCount)
  row.Points = scoring.PagePoints(newPage)

  if row.PercentComplete >= 100 {
    row.Status = types.ProgressStatusCompleted
    row.Points = scoring.Round2(row.Points + scoring.CompletionBonus(pageCount))
    return true, nil
  }
  return false, nil
}

func (ps *progressService) UpdateByPage(ctx context.Context, userID, progressID uuid.UUID, newPage int) (*types.Progress, bool, error) {
  row, err := ps.ownedProgress(ctx, userID, progressID)
  if err != nil {
    return nil, false, err
  }

  pageCount := 0
  if row.Book != nil {
    pageCount = row.Book.PageCount
  }

  justCompleted, err := applyPageUpdate(row, pageCount, newPage)
  if err != nil {
    return row, false, err
  }

  if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if sErr := ps.progressRepo.Save(ctx, tx, row); sErr != nil {
      return fmt.Errorf("Failed to save progress: %w", sErr)
    }
    eventType := types.ReadingEventPageUpdate
    if justCompleted {
      eventType = types.ReadingEventCompleted
    }
    return ps.emitEvent(ctx, tx, row, eventType, map[string]interface{}{
      "page":    row.CurrentPage,
      "percent": row.PercentComplete,
      "points":  row.Points,
    })
  }); err != nil {
    return nil, false, err
  }

  if ps.standings != nil {
    ps.standings.InvalidateStandings(ctx)
  }
  return row, justCompleted, nil
}

func (ps *progressService) RegisterSession(ctx context.Context, userID, progressID uuid.UUID, pagesRead int, at time.Time) (*SessionResult, error) {
  row, err := ps.ownedProgress(ctx, userID, progressID)
  if err != nil {
    return nil, err
  }
  if at.IsZero() {
    at = time.Now()
  }

  pageCount := 0
  if row.Book != nil {
    pageCount = row.Book.PageCount
  }

  // Advance the page first, through the normal page-update rules. A session
  // against an already completed book keeps the page frozen but still counts
  // as a session.
  justCompleted := false
  if pagesRead > 0 {
    jc, pErr := applyPageUpdate(row, pageCount, row.CurrentPage+pagesRead)
    if pErr != nil && pErr != ErrAlreadyCompleted {
      return nil, pErr
    }
    justCompleted = jc
  }

  if row.FirstProgressAt == nil {
    row.FirstProgressAt = &at
  }

  switch {
  case row.LastSessionAt == nil:
    row.CurrentStreakDays = 1
  default:
    switch daysBetween(*row.LastSessionAt, at) {
    case 0:
      // Same calendar day, streak unchanged.
    case 1:
      row.CurrentStreakDays++
    default:
      row.CurrentStreakDays = 1
    }
  }

  awarded := scoring.SessionBasePoints + int(scoring.StreakBonus(row.CurrentStreakDays))
  row.Points = scoring.Round2(row.Points + float64(awarded))
  row.SessionCount++
  if row.CurrentStreakDays > row.LongestStreakDays {
    row.LongestStreakDays = row.CurrentStreakDays
  }
  row.LastSessionAt = &at

  if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if sErr := ps.progressRepo.Save(ctx, tx, row); sErr != nil {
      return fmt.Errorf("Failed to save progress: %w", sErr)
    }
    return ps.emitEvent(ctx, tx, row, types.ReadingEventSession, map[string]interface{}{
      "points_awarded": awarded,
      "pages_read":     pagesRead,
      "streak_days":    row.CurrentStreakDays,
      "session_count":  row.SessionCount,
    })
  }); err != nil {
    return nil, err
  }

  if ps.standings != nil {
    ps.standings.InvalidateStandings(ctx)
  }
  return &SessionResult{PointsAwarded: awarded, JustCompleted: justCompleted, Progress: row}, nil
}

func (ps *progressService) SetStatus(ctx context.Context, userID, progressID uuid.UUID, status string) (*types.Progress, bool, error) {
  if !types.ValidProgressStatus(status) {
    return nil, false, ErrInvalidInput
  }

  row, err := ps.ownedProgress(ctx, userID, progressID)
  if err != nil {
    return nil, false, err
  }
  if row.Status == types.ProgressStatusCompleted {
    return row, false, ErrAlreadyCompleted
  }

  // Marking completed by hand jumps to the last page so the normal
  // completion rules (percent freeze, one-time bonus) apply.
  if status == types.ProgressStatusCompleted {
    pageCount := 0
    if row.Book != nil {
      pageCount = row.Book.PageCount
    }
    if pageCount > 0 {
      return ps.UpdateByPage(ctx, userID, progressID, pageCount)
    }
    // Unknown page count: completion without page-derived points or bonus.
    row.Status = types.ProgressStatusCompleted
    if err := ps.saveWithEvent(ctx, row, types.ReadingEventCompleted, map[string]interface{}{
      "points": row.Points,
    }); err != nil {
      return nil, false, err
    }
    return row, true, nil
  }

  row.Status = status
  if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return ps.progressRepo.Save(ctx, tx, row)
  }); err != nil {
    return nil, false, fmt.Errorf("Failed to save progress: %w", err)
  }
  return row, false, nil
}

func (ps *progressService) ListForUser(ctx context.Context, userID uuid.UUID, status string) ([]*types.Progress, error) {
  if status != "" && !types.ValidProgressStatus(status) {
    return nil, ErrInvalidInput
  }
  return ps.progressRepo.ListByUser(ctx, nil, userID, status)
}

func (ps *progressService) ownedProgress(ctx context.Context, userID, progressID uuid.UUID) (*types.Progress, error) {
  row, err := ps.progressRepo.GetByID(ctx, nil, progressID)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch progress: %w", err)
  }
  if row == nil || row.UserID != userID {
    return nil, ErrNotFound
  }
  return row, nil
}

func (ps *progressService) saveWithEvent(ctx context.Context, row *types.Progress, eventType string, data map[string]interface{}) error {
  return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := ps.progressRepo.Save(ctx, tx, row); err != nil {
      return fmt.Errorf("Failed to save progress: %w", err)
    }
    return ps.emitEvent(ctx, tx, row, eventType, data)
  })
}

func (ps *progressService) emitEvent(ctx context.Context, tx *gorm.DB, row *types.Progress, eventType string, data map[string]interface{}) error {
  payload, err := json.Marshal(data)
  if err != nil {
    return fmt.Errorf("Failed to marshal event data: %w", err)
  }
  bookID := row.BookID
  event := &types.ReadingEvent{
    UserID: row.UserID,
    BookID: &bookID,
    Type:   eventType,
    Data:   datatypes.JSON(payload),
  }
  if _, err := ps.eventRepo.Create(ctx, tx, []*types.ReadingEvent{event}); err != nil {
    return fmt.Errorf("Failed to record reading event: %w", err)
  }
  return nil
}

// daysBetween counts whole calendar days between two instants, in UTC.
func daysBetween(earlier, later time.Time) int {
  e := earlier.UTC()
  l := later.UTC()
  eDay := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
  lDay := time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
  return int(lDay.Sub(eDay).Hours() / 24)
}
