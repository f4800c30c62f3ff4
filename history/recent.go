package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fraudrisk/services"
	"fraudrisk/util"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const recentKey = "assessments:recent"

var ErrNotConfigured = errors.New("history is not configured")

// Read-only after Configure.
type historyConfigT struct {
	configured bool
	retention  time.Duration
	maxEntries int64
}

var historyConfig = historyConfigT{}

func Configure(retention time.Duration, maxEntries int) error {
	if retention <= 0 {
		return errors.New("history: retention must be positive")
	}
	if maxEntries <= 0 {
		return errors.New("history: maxEntries must be positive")
	}
	if redisErr := services.PingRedis(); redisErr != nil {
		return errors.New("history: a valid redis connection is required. Check redis configuration")
	}

	historyConfig = historyConfigT{
		configured: true,
		retention:  retention,
		maxEntries: int64(maxEntries),
	}
	return nil
}

// Disable stops further recording and listing. Used on shutdown before the Redis client closes.
func Disable() {
	historyConfig = historyConfigT{}
}

func Enabled() bool {
	return historyConfig.configured
}

// Record adds an assessment to the recent log, dropping entries older than the
// retention window and keeping at most maxEntries of the newest.
func Record(ctx context.Context, assessment util.Assessment) error {
	if !historyConfig.configured {
		return ErrNotConfigured
	}

	data, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("encoding assessment: %w", err)
	}

	now := assessment.CreatedAt.UnixMilli()
	windowStart := float64(now - historyConfig.retention.Milliseconds())

	pipe := services.RedisClient.TxPipeline()
	pipe.ZRemRangeByScore(ctx, recentKey, "0", fmt.Sprintf("%f", windowStart))
	pipe.ZAdd(ctx, recentKey, redis.Z{
		Score:  float64(now),
		Member: data,
	})
	// Ranks are ascending by time, so trimming the lowest ranks removes the oldest.
	pipe.ZRemRangeByRank(ctx, recentKey, 0, -historyConfig.maxEntries-1)
	pipe.Expire(ctx, recentKey, historyConfig.retention)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording assessment: %w", err)
	}
	return nil
}

// Recent returns up to limit assessments inside the retention window, newest first.
func Recent(ctx context.Context, limit int) ([]util.Assessment, int, error) {
	if !historyConfig.configured {
		return nil, http.StatusBadRequest, ErrNotConfigured
	}
	if limit <= 0 || int64(limit) > historyConfig.maxEntries {
		limit = int(historyConfig.maxEntries)
	}

	windowStart := time.Now().UnixMilli() - historyConfig.retention.Milliseconds()
	raw, err := services.RedisClient.ZRevRangeByScore(ctx, recentKey, &redis.ZRangeBy{
		Min:   fmt.Sprintf("%d", windowStart),
		Max:   "+inf",
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("failed to fetch assessments from redis")
	}

	assessments := make([]util.Assessment, 0, len(raw))
	for _, member := range raw {
		var a util.Assessment
		if err := json.Unmarshal([]byte(member), &a); err != nil {
			continue
		}
		assessments = append(assessments, a)
	}
	return assessments, http.StatusOK, nil
}
