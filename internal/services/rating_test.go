package services

import (
  "context"
  "errors"
  "testing"
  "github.com/google/uuid"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

func (e *testEnv) completeBook(t *testing.T, userID, bookID uuid.UUID, pageCount int) *types.Progress {
  t.Helper()
  row := e.createProgress(t, userID, bookID)
  got, _, err := e.progress.UpdateByPage(context.Background(), userID, row.ID, pageCount)
  if err != nil {
    t.Fatalf("Failed to complete book for fixture: %v", err)
  }
  return got
}

func TestUpsertRatingPreconditions(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  user := env.createUser(t, "Joana")
  book := env.createBook(t, "A Hora da Estrela", 100)

  if _, _, err := env.rating.UpsertRating(ctx, user.ID, book.ID, 6, ""); !errors.Is(err, ErrOutOfRangeRating) {
    t.Fatalf("err = %v, want ErrOutOfRangeRating", err)
  }
  if _, _, err := env.rating.UpsertRating(ctx, user.ID, uuid.New(), 4, ""); !errors.Is(err, ErrNotFound) {
    t.Fatalf("err = %v, want ErrNotFound", err)
  }

  // No progress at all, then unfinished progress: both rejected.
  if _, _, err := env.rating.UpsertRating(ctx, user.ID, book.ID, 4, ""); !errors.Is(err, ErrRatingNotAllowed) {
    t.Fatalf("err = %v, want ErrRatingNotAllowed without progress", err)
  }
  row := env.createProgress(t, user.ID, book.ID)
  if _, _, err := env.progress.UpdateByPage(ctx, user.ID, row.ID, 50); err != nil {
    t.Fatalf("UpdateByPage: %v", err)
  }
  if _, _, err := env.rating.UpsertRating(ctx, user.ID, book.ID, 4, ""); !errors.Is(err, ErrRatingNotAllowed) {
    t.Fatalf("err = %v, want ErrRatingNotAllowed while still reading", err)
  }
}

func TestUpsertRatingAggregatesAndBonus(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  alice := env.createUser(t, "Alice")
  bruno := env.createUser(t, "Bruno")
  book := env.createBook(t, "Capitaes da Areia", 100)

  aliceProgress := env.completeBook(t, alice.ID, book.ID, 100)
  env.completeBook(t, bruno.ID, book.ID, 100)

  rating, created, err := env.rating.UpsertRating(ctx, alice.ID, book.ID, 4, "gostei")
  if err != nil {
    t.Fatalf("UpsertRating: %v", err)
  }
  if !created || rating.Score != 4 {
    t.Fatalf("got created=%v score=%d, want true/4", created, rating.Score)
  }

  // First rating grants the one-time bonus on top of the completion points.
  reloaded, err := env.progressRepo.GetByID(ctx, nil, aliceProgress.ID)
  if err != nil {
    t.Fatalf("GetByID: %v", err)
  }
  if reloaded.Points != 14.00 {
    t.Fatalf("points after first rating = %.2f, want 14.00", reloaded.Points)
  }

  if _, _, err := env.rating.UpsertRating(ctx, bruno.ID, book.ID, 5, ""); err != nil {
    t.Fatalf("UpsertRating second user: %v", err)
  }
  books, err := env.bookRepo.GetByIDs(ctx, nil, []uuid.UUID{book.ID})
  if err != nil {
    t.Fatalf("GetByIDs: %v", err)
  }
  if books[0].MeanRating != 4.50 || books[0].RatingCount != 2 {
    t.Fatalf("aggregates = %.2f/%d, want 4.50/2", books[0].MeanRating, books[0].RatingCount)
  }

  // Re-rating updates in place: aggregates recompute, no second bonus.
  updated, created, err := env.rating.UpsertRating(ctx, alice.ID, book.ID, 2, "mudei de ideia")
  if err != nil {
    t.Fatalf("UpsertRating update: %v", err)
  }
  if created || updated.ID != rating.ID {
    t.Fatalf("re-rating should update the existing row")
  }
  books, _ = env.bookRepo.GetByIDs(ctx, nil, []uuid.UUID{book.ID})
  if books[0].MeanRating != 3.50 || books[0].RatingCount != 2 {
    t.Fatalf("aggregates after update = %.2f/%d, want 3.50/2", books[0].MeanRating, books[0].RatingCount)
  }
  reloaded, _ = env.progressRepo.GetByID(ctx, nil, aliceProgress.ID)
  if reloaded.Points != 14.00 {
    t.Fatalf("points after re-rating = %.2f, want 14.00 (bonus is one-time)", reloaded.Points)
  }
}

func TestDeleteRating(t *testing.T) {
  env := newTestEnv(t)
  ctx := context.Background()
  user := env.createUser(t, "Marina")
  book := env.createBook(t, "Macunaima", 100)
  env.completeBook(t, user.ID, book.ID, 100)

  if err := env.rating.DeleteRating(ctx, user.ID, book.ID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("err = %v, want ErrNotFound for missing rating", err)
  }

  if _, _, err := env.rating.UpsertRating(ctx, user.ID, book.ID, 5, ""); err != nil {
    t.Fatalf("UpsertRating: %v", err)
  }
  if err := env.rating.DeleteRating(ctx, user.ID, book.ID); err != nil {
    t.Fatalf("DeleteRating: %v", err)
  }

  books, err := env.bookRepo.GetByIDs(ctx, nil, []uuid.UUID{book.ID})
  if err != nil {
    t.Fatalf("GetByIDs: %v", err)
  }
  if books[0].MeanRating != 0 || books[0].RatingCount != 0 {
    t.Fatalf("aggregates after delete = %.2f/%d, want 0/0", books[0].MeanRating, books[0].RatingCount)
  }
}
