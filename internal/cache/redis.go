package cache

import (
  "context"
  "fmt"
  "time"
  "github.com/redis/go-redis/v9"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/utils"
)

// RedisService is a thin cache wrapper. Callers treat cache misses and cache
// errors the same way: recompute from the database.
type RedisService struct {
  client  *redis.Client
  log     *logger.Logger
}

func NewRedisService(log *logger.Logger) (*RedisService, error) {
  serviceLog := log.With("service", "RedisService")

  redisHost := utils.GetEnv("REDIS_HOST", "localhost", log)
  redisPort := utils.GetEnv("REDIS_PORT", "6379", log)
  redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)

  client := redis.NewClient(&redis.Options{
    Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
    Password: redisPassword,
    DB:       0,
  })

  if err := client.Ping(context.Background()).Err(); err != nil {
    serviceLog.Error("Failed to connect to Redis", "error", err)
    return nil, fmt.Errorf("Failed to connect to Redis: %w", err)
  }
  serviceLog.Info("Connected to Redis")
  return &RedisService{client: client, log: serviceLog}, nil
}

// NewRedisServiceWithClient wires an existing client; tests use it with a
// miniredis-backed client.
func NewRedisServiceWithClient(client *redis.Client, log *logger.Logger) *RedisService {
  return &RedisService{client: client, log: log.With("service", "RedisService")}
}

func (s *RedisService) Get(ctx context.Context, key string) (string, bool) {
  val, err := s.client.Get(ctx, key).Result()
  if err != nil {
    if err != redis.Nil {
      s.log.Warn("Redis get failed", "key", key, "error", err)
    }
    return "", false
  }
  return val, true
}

func (s *RedisService) Set(ctx context.Context, key, val string, ttl time.Duration) {
  if err := s.client.Set(ctx, key, val, ttl).Err(); err != nil {
    s.log.Warn("Redis set failed", "key", key, "error", err)
  }
}

func (s *RedisService) Delete(ctx context.Context, keys ...string) {
  if len(keys) == 0 {
    return
  }
  if err := s.client.Del(ctx, keys...).Err(); err != nil {
    s.log.Warn("Redis delete failed", "keys", keys, "error", err)
  }
}

func (s *RedisService) Close() {
  if s.client != nil {
    _ = s.client.Close()
  }
}
