package services

import (
  "context"
  "errors"
  "testing"
  "time"
  "github.com/google/uuid"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

func TestUpdateByPageRecomputesPoints(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  user := env.createUser(t, "Ana")
  book := env.createBook(t, "Dom Casmurro", 200)
  row := env.createProgress(t, user.ID, book.ID)

  got, justCompleted, err := env.progress.UpdateByPage(ctx, user.ID, row.ID, 100)
  if err != nil {
    t.Fatalf("UpdateByPage: %v", err)
  }
  if justCompleted {
    t.Fatal("halfway through should not complete the book")
  }
  if got.CurrentPage != 100 || got.PercentComplete != 50 || got.Points != 1.00 {
    t.Fatalf("got page=%d percent=%.2f points=%.2f, want 100/50.00/1.00", got.CurrentPage, got.PercentComplete, got.Points)
  }

  // Moving the page backwards overwrites the points downwards too.
  got, _, err = env.progress.UpdateByPage(ctx, user.ID, row.ID, 50)
  if err != nil {
    t.Fatalf("UpdateByPage backwards: %v", err)
  }
  if got.CurrentPage != 50 || got.Points != 0.50 {
    t.Fatalf("got page=%d points=%.2f, want 50/0.50", got.CurrentPage, got.Points)
  }
}

func TestCompletionBonusAwardedOnce(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  user := env.createUser(t, "Bruno")
  book := env.createBook(t, "Grande Sertao", 200)
  row := env.createProgress(t, user.ID, book.ID)

  got, justCompleted, err := env.progress.UpdateByPage(ctx, user.ID, row.ID, 200)
  if err != nil {
    t.Fatalf("UpdateByPage to last page: %v", err)
  }
  if !justCompleted {
    t.Fatal("reaching the last page should complete the book")
  }
  if got.Status != types.ProgressStatusCompleted {
    t.Fatalf("status = %q, want COMPLETED", got.Status)
  }
  // 200 pages: 2.00 page points plus the 20.00 completion bonus.
  if got.Points != 22.00 {
    t.Fatalf("points = %.2f, want 22.00", got.Points)
  }

  // A second update is a no-op: page, status and points stay frozen.
  _, _, err = env.progress.UpdateByPage(ctx, user.ID, row.ID, 10)
  if !errors.Is(err, ErrAlreadyCompleted) {
    t.Fatalf("err = %v, want ErrAlreadyCompleted", err)
  }
  reloaded, err := env.progressRepo.GetByID(ctx, nil, row.ID)
  if err != nil {
    t.Fatalf("GetByID: %v", err)
  }
  if reloaded.CurrentPage != 200 || reloaded.Points != 22.00 {
    t.Fatalf("got page=%d points=%.2f after no-op, want 200/22.00", reloaded.CurrentPage, reloaded.Points)
  }
}

func TestRegisterSessionStreakBonusCap(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  user := env.createUser(t, "Clara")
  book := env.createBook(t, "Os Sertoes", 2000)
  row := env.createProgress(t, user.ID, book.ID)

  base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
  wantAwards := []int{8, 11, 14, 17, 20, 20, 20}
  for day, want := range wantAwards {
    res, err := env.progress.RegisterSession(ctx, user.ID, row.ID, 1, base.AddDate(0, 0, day))
    if err != nil {
      t.Fatalf("RegisterSession day %d: %v", day, err)
    }
    if res.PointsAwarded != want {
      t.Fatalf("day %d awarded %d points, want %d", day, res.PointsAwarded, want)
    }
    if res.Progress.CurrentStreakDays != day+1 {
      t.Fatalf("day %d streak = %d, want %d", day, res.Progress.CurrentStreakDays, day+1)
    }
  }

  // A second session on the same calendar day keeps the streak where it is.
  res, err := env.progress.RegisterSession(ctx, user.ID, row.ID, 1, base.AddDate(0, 0, 6).Add(4*time.Hour))
  if err != nil {
    t.Fatalf("RegisterSession same day: %v", err)
  }
  if res.Progress.CurrentStreakDays != 7 {
    t.Fatalf("same-day streak = %d, want 7", res.Progress.CurrentStreakDays)
  }
}

func TestRegisterSessionStreakResetsAfterGap(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  user := env.createUser(t, "Davi")
  book := env.createBook(t, "Vidas Secas", 2000)
  row := env.createProgress(t, user.ID, book.ID)

  base := time.Date(2026, 4, 10, 21, 0, 0, 0, time.UTC)
  for day := 0; day < 2; day++ {
    if _, err := env.progress.RegisterSession(ctx, user.ID, row.ID, 1, base.AddDate(0, 0, day)); err != nil {
      t.Fatalf("RegisterSession day %d: %v", day, err)
    }
  }

  res, err := env.progress.RegisterSession(ctx, user.ID, row.ID, 1, base.AddDate(0, 0, 4))
  if err != nil {
    t.Fatalf("RegisterSession after gap: %v", err)
  }
  if res.Progress.CurrentStreakDays != 1 {
    t.Fatalf("streak after 3-day gap = %d, want 1", res.Progress.CurrentStreakDays)
  }
  if res.PointsAwarded != 8 {
    t.Fatalf("awarded %d points after reset, want 8", res.PointsAwarded)
  }
  if res.Progress.LongestStreakDays != 2 {
    t.Fatalf("longest streak = %d, want 2", res.Progress.LongestStreakDays)
  }
}

func TestRegisterSessionOnCompletedBook(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  user := env.createUser(t, "Elisa")
  book := env.createBook(t, "Quincas Borba", 100)
  row := env.createProgress(t, user.ID, book.ID)

  if _, _, err := env.progress.UpdateByPage(ctx, user.ID, row.ID, 100); err != nil {
    t.Fatalf("UpdateByPage: %v", err)
  }

  // Page stays frozen but the session itself still counts and pays out.
  res, err := env.progress.RegisterSession(ctx, user.ID, row.ID, 10, time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
  if err != nil {
    t.Fatalf("RegisterSession on completed book: %v", err)
  }
  if res.Progress.CurrentPage != 100 {
    t.Fatalf("page moved to %d on a completed book", res.Progress.CurrentPage)
  }
  if res.PointsAwarded != 8 {
    t.Fatalf("awarded %d points, want 8", res.PointsAwarded)
  }
  if res.Progress.SessionCount != 1 {
    t.Fatalf("session count = %d, want 1", res.Progress.SessionCount)
  }
}

func TestSetStatus(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  user := env.createUser(t, "Fabio")
  book := env.createBook(t, "Iracema", 150)
  row := env.createProgress(t, user.ID, book.ID)

  if _, _, err := env.progress.SetStatus(ctx, user.ID, row.ID, "DREAMING"); !errors.Is(err, ErrInvalidInput) {
    t.Fatalf("err = %v, want ErrInvalidInput", err)
  }

  got, _, err := env.progress.SetStatus(ctx, user.ID, row.ID, types.ProgressStatusPaused)
  if err != nil {
    t.Fatalf("SetStatus PAUSED: %v", err)
  }
  if got.Status != types.ProgressStatusPaused {
    t.Fatalf("status = %q, want PAUSED", got.Status)
  }

  // Marking completed by hand runs the normal completion rules.
  got, justCompleted, err := env.progress.SetStatus(ctx, user.ID, row.ID, types.ProgressStatusCompleted)
  if err != nil {
    t.Fatalf("SetStatus COMPLETED: %v", err)
  }
  if !justCompleted || got.Points != 16.50 {
    t.Fatalf("got justCompleted=%v points=%.2f, want true/16.50", justCompleted, got.Points)
  }

  // COMPLETED is terminal.
  if _, _, err := env.progress.SetStatus(ctx, user.ID, row.ID, types.ProgressStatusReading); !errors.Is(err, ErrAlreadyCompleted) {
    t.Fatalf("err = %v, want ErrAlreadyCompleted", err)
  }
}

func TestAddToLibrary(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  user := env.createUser(t, "Gilda")
  book := env.createBook(t, "O Cortico", 300)

  row, created, err := env.progress.AddToLibrary(ctx, user.ID, book.ID)
  if err != nil {
    t.Fatalf("AddToLibrary: %v", err)
  }
  if !created || row.Status != types.ProgressStatusReading {
    t.Fatalf("got created=%v status=%q, want true/READING", created, row.Status)
  }

  again, created, err := env.progress.AddToLibrary(ctx, user.ID, book.ID)
  if err != nil {
    t.Fatalf("AddToLibrary again: %v", err)
  }
  if created || again.ID != row.ID {
    t.Fatalf("second add should return the existing row without creating")
  }

  if _, _, err := env.progress.AddToLibrary(ctx, user.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
    t.Fatalf("err = %v, want ErrNotFound", err)
  }
}

func TestProgressOwnership(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  owner := env.createUser(t, "Helena")
  other := env.createUser(t, "Igor")
  book := env.createBook(t, "Memorias Postumas", 250)
  row := env.createProgress(t, owner.ID, book.ID)

  if _, _, err := env.progress.UpdateByPage(ctx, other.ID, row.ID, 10); !errors.Is(err, ErrNotFound) {
    t.Fatalf("err = %v, want ErrNotFound for another user's progress", err)
  }
}

func TestDaysBetween(t *testing.T) {
  tests := []struct {
    name    string
    earlier time.Time
    later   time.Time
    want    int
  }{
    {"same instant", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), 0},
    {"same day different hours", time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 23, 0, 0, 0, time.UTC), 0},
    {"across midnight", time.Date(2026, 1, 1, 23, 30, 0, 0, time.UTC), time.Date(2026, 1, 2, 0, 30, 0, 0, time.UTC), 1},
    {"three days", time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC), time.Date(2026, 1, 4, 9, 0, 0, 0, time.UTC), 3},
  }
  for _, tc := range tests {
    t.Run(tc.name, func(t *testing.T) {
      if got := daysBetween(tc.earlier, tc.later); got != tc.want {
        t.Fatalf("daysBetween = %d, want %d", got, tc.want)
      }
    })
  }
}
