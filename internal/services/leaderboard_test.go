package services

import (
  "context"
  "testing"
  "github.com/google/uuid"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

func (e *testEnv) createProgressWithPoints(t *testing.T, userID, bookID uuid.UUID, points float64) *types.Progress {
  t.Helper()
  row := &types.Progress{
    UserID: userID,
    BookID: bookID,
    Points: points,
    Status: types.ProgressStatusReading,
  }
  if err := e.db.Create(row).Error; err != nil {
    t.Fatalf("Failed to create test progress: %v", err)
  }
  return row
}

func TestRankOfOrdersByPoints(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  first := env.createUser(t, "Rita")
  second := env.createUser(t, "Saulo")
  third := env.createUser(t, "Tania")
  unranked := env.createUser(t, "Ulisses")
  book := env.createBook(t, "O Guarani", 300)

  env.createProgressWithPoints(t, first.ID, book.ID, 50)
  env.createProgressWithPoints(t, second.ID, book.ID, 30)
  env.createProgressWithPoints(t, third.ID, book.ID, 10)
  env.createProgressWithPoints(t, unranked.ID, book.ID, 0)

  wantRanks := map[uuid.UUID]int{first.ID: 1, second.ID: 2, third.ID: 3}
  for userID, want := range wantRanks {
    rank, total, err := env.leaderboard.RankOf(ctx, userID)
    if err != nil {
      t.Fatalf("RankOf: %v", err)
    }
    if rank != want {
      t.Fatalf("rank = %d, want %d", rank, want)
    }
    if total != 3 {
      t.Fatalf("total participants = %d, want 3", total)
    }
  }

  // Zero points never ranks, even with a progress row present.
  rank, total, err := env.leaderboard.RankOf(ctx, unranked.ID)
  if err != nil {
    t.Fatalf("RankOf unranked: %v", err)
  }
  if rank != 0 || total != 3 {
    t.Fatalf("got rank=%d total=%d for zero-point user, want 0/3", rank, total)
  }
}

func TestTopAggregatesAcrossBooks(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  reader := env.createUser(t, "Vera")
  rival := env.createUser(t, "Wagner")
  first := env.createBook(t, "Claro Enigma", 100)
  second := env.createBook(t, "Libertinagem", 100)

  env.createProgressWithPoints(t, reader.ID, first.ID, 12.5)
  env.createProgressWithPoints(t, reader.ID, second.ID, 7.5)
  env.createProgressWithPoints(t, rival.ID, first.ID, 15)

  entries, err := env.leaderboard.Top(ctx, 10)
  if err != nil {
    t.Fatalf("Top: %v", err)
  }
  if len(entries) != 2 {
    t.Fatalf("got %d entries, want 2", len(entries))
  }
  if entries[0].UserID != reader.ID || entries[0].TotalPoints != 20 {
    t.Fatalf("first entry = %v/%v, want summed 20 points for the reader", entries[0].UserID, entries[0].TotalPoints)
  }
  if entries[0].Name != "Vera Reader" {
    t.Fatalf("first entry name = %q, want display name", entries[0].Name)
  }
  if entries[1].Rank != 2 {
    t.Fatalf("second entry rank = %d, want 2", entries[1].Rank)
  }
}

func TestTopUsesCacheUntilInvalidated(t *testing.T) {
  env := newTestEnvWithRedis(t, newTestRedis(t))
  ctx := context.Background()
  reader := env.createUser(t, "Xavier")
  book := env.createBook(t, "A Moreninha", 100)
  row := env.createProgressWithPoints(t, reader.ID, book.ID, 10)

  entries, err := env.leaderboard.Top(ctx, 10)
  if err != nil {
    t.Fatalf("Top: %v", err)
  }
  if len(entries) != 1 || entries[0].TotalPoints != 10 {
    t.Fatalf("first read = %+v, want one entry with 10 points", entries)
  }

  // A direct write does not show through the cache.
  if err := env.db.Model(row).Update("points", 99).Error; err != nil {
    t.Fatalf("Update: %v", err)
  }
  entries, err = env.leaderboard.Top(ctx, 10)
  if err != nil {
    t.Fatalf("Top cached: %v", err)
  }
  if entries[0].TotalPoints != 10 {
    t.Fatalf("cached read = %.2f points, want the stale 10", entries[0].TotalPoints)
  }

  env.leaderboard.InvalidateStandings(ctx)
  entries, err = env.leaderboard.Top(ctx, 10)
  if err != nil {
    t.Fatalf("Top after invalidation: %v", err)
  }
  if entries[0].TotalPoints != 99 {
    t.Fatalf("fresh read = %.2f points, want 99", entries[0].TotalPoints)
  }
}
