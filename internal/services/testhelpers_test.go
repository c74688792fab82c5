package services

import (
  "fmt"
  "strings"
  "testing"
  "github.com/alicebob/miniredis/v2"
  "github.com/google/uuid"
  "github.com/redis/go-redis/v9"
  "go.uber.org/zap"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"
  "github.com/mlisboa17/leiabem-backend/internal/cache"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/repos"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

func newTestLogger() *logger.Logger {
  return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("Failed to open test database: %v", err)
  }
  if err := db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Author{},
    &types.Publisher{},
    &types.Book{},
    &types.Progress{},
    &types.Rating{},
    &types.ReadingEvent{},
  ); err != nil {
    t.Fatalf("Failed to migrate test database: %v", err)
  }
  return db
}

func newTestRedis(t *testing.T) *cache.RedisService {
  t.Helper()
  mr := miniredis.RunT(t)
  client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
  return cache.NewRedisServiceWithClient(client, newTestLogger())
}

type testEnv struct {
  db           *gorm.DB
  userRepo     repos.UserRepo
  bookRepo     repos.BookRepo
  progressRepo repos.ProgressRepo
  ratingRepo   repos.RatingRepo
  eventRepo    repos.ReadingEventRepo
  leaderboard  LeaderboardService
  progress     ProgressService
  rating       RatingService
  celebration  CelebrationService
}

func newTestEnv(t *testing.T) *testEnv {
  return newTestEnvWithRedis(t, nil)
}

func newTestEnvWithRedis(t *testing.T, redisService *cache.RedisService) *testEnv {
  t.Helper()
  db := newTestDB(t)
  log := newTestLogger()

  userRepo := repos.NewUserRepo(db, log)
  bookRepo := repos.NewBookRepo(db, log)
  progressRepo := repos.NewProgressRepo(db, log)
  ratingRepo := repos.NewRatingRepo(db, log)
  eventRepo := repos.NewReadingEventRepo(db, log)

  leaderboard := NewLeaderboardService(db, log, progressRepo, userRepo, redisService)
  return &testEnv{
    db:           db,
    userRepo:     userRepo,
    bookRepo:     bookRepo,
    progressRepo: progressRepo,
    ratingRepo:   ratingRepo,
    eventRepo:    eventRepo,
    leaderboard:  leaderboard,
    progress:     NewProgressService(db, log, progressRepo, bookRepo, eventRepo, leaderboard),
    rating:       NewRatingService(db, log, ratingRepo, bookRepo, progressRepo, eventRepo, leaderboard),
    celebration:  NewCelebrationService(db, log, progressRepo, eventRepo, leaderboard),
  }
}

func (e *testEnv) createUser(t *testing.T, firstName string) *types.User {
  t.Helper()
  user := &types.User{
    Email:     strings.ToLower(firstName) + "@example.com",
    Password:  "not-a-real-hash",
    FirstName: firstName,
    LastName:  "Reader",
  }
  if err := e.db.Create(user).Error; err != nil {
    t.Fatalf("Failed to create test user: %v", err)
  }
  return user
}

func (e *testEnv) createBook(t *testing.T, title string, pageCount int) *types.Book {
  t.Helper()
  book := &types.Book{
    Title:           title,
    PublicationYear: 2020,
    PageCount:       pageCount,
  }
  if err := e.db.Create(book).Error; err != nil {
    t.Fatalf("Failed to create test book: %v", err)
  }
  return book
}

func (e *testEnv) createProgress(t *testing.T, userID, bookID uuid.UUID) *types.Progress {
  t.Helper()
  row := &types.Progress{
    UserID: userID,
    BookID: bookID,
    Status: types.ProgressStatusReading,
  }
  if err := e.db.Create(row).Error; err != nil {
    t.Fatalf("Failed to create test progress: %v", err)
  }
  return row
}
