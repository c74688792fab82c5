package services

import (
  "context"
  "errors"
  "testing"
)

func TestCelebrateAwardsPodiumBonus(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  leader := env.createUser(t, "Nina")
  runnerUp := env.createUser(t, "Otto")
  book := env.createBook(t, "Sagarana", 100)

  row := env.createProgressWithPoints(t, leader.ID, book.ID, 40)
  env.createProgressWithPoints(t, runnerUp.ID, book.ID, 20)

  res, err := env.celebration.Celebrate(ctx, leader.ID, row.ID)
  if err != nil {
    t.Fatalf("Celebrate: %v", err)
  }
  if res.RankBefore != 1 || !res.BonusAwarded || res.PodiumBonus != 300 || res.PodiumPosition != 1 {
    t.Fatalf("got rank=%d awarded=%v bonus=%.2f position=%d, want 1/true/300.00/1", res.RankBefore, res.BonusAwarded, res.PodiumBonus, res.PodiumPosition)
  }
  if res.Progress.Points != 340 {
    t.Fatalf("points = %.2f, want 340.00", res.Progress.Points)
  }
  if res.TotalPoints != 340 || res.TotalParticipants != 2 {
    t.Fatalf("got total=%.2f participants=%d, want 340.00/2", res.TotalPoints, res.TotalParticipants)
  }
}

func TestCelebrateOffPodiumGetsNothing(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  book := env.createBook(t, "Helena", 100)
  for i, points := range []float64{400, 300, 200} {
    ahead := env.createUser(t, "Podium"+string(rune('A'+i)))
    env.createProgressWithPoints(t, ahead.ID, book.ID, points)
  }
  fourth := env.createUser(t, "Quito")
  row := env.createProgressWithPoints(t, fourth.ID, book.ID, 100)

  res, err := env.celebration.Celebrate(ctx, fourth.ID, row.ID)
  if err != nil {
    t.Fatalf("Celebrate: %v", err)
  }
  if res.BonusAwarded || res.PodiumBonus != 0 || res.PodiumPosition != 0 {
    t.Fatalf("rank 4 got a bonus: %+v", res)
  }
  // The rank is decided strictly before any bonus. No bonus, no movement.
  if res.RankBefore != 4 || res.RankAfter != 4 {
    t.Fatalf("got rank before=%d after=%d, want 4/4", res.RankBefore, res.RankAfter)
  }
  if res.Progress.Points != 100 {
    t.Fatalf("points = %.2f, want unchanged 100.00", res.Progress.Points)
  }
}

func TestCelebrateRejectsForeignProgress(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  owner := env.createUser(t, "Yara")
  other := env.createUser(t, "Zeca")
  book := env.createBook(t, "Luciola", 100)
  row := env.createProgressWithPoints(t, owner.ID, book.ID, 10)

  if _, err := env.celebration.Celebrate(ctx, other.ID, row.ID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("err = %v, want ErrNotFound", err)
  }
}
