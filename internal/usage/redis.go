package usage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "calculator-usage:"
	redisDayLayout = "2006-01-02"
	// Daily counters outlive the longest stats window anyone asks for.
	redisCounterTTL = 400 * 24 * time.Hour
)

// RedisStore keeps one hash of per-calculator counters per UTC day.
// Inputs and results are not stored.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore connects to the server at addr.
func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb, now: time.Now}
}

func dayKey(t time.Time) string {
	return redisKeyPrefix + t.UTC().Format(redisDayLayout)
}

// Ping checks that the server is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Record implements Recorder.
func (r *RedisStore) Record(ctx context.Context, event Event) error {
	if err := event.Normalize(); err != nil {
		return err
	}
	key := dayKey(event.CreatedAt)
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, key, event.CalculatorType, 1)
	pipe.Expire(ctx, key, redisCounterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("increment usage counter: %w", err)
	}
	return nil
}

// Stats implements StatsReader. Counters are per day, so since is rounded down
// to the start of its UTC day.
func (r *RedisStore) Stats(ctx context.Context, since time.Time) ([]Stat, error) {
	counts := make(map[string]int)
	end := r.now().UTC()
	for day := since.UTC().Truncate(24 * time.Hour); !day.After(end); day = day.AddDate(0, 0, 1) {
		values, err := r.client.HGetAll(ctx, dayKey(day)).Result()
		if err != nil {
			return nil, fmt.Errorf("read usage counters for %s: %w", day.Format(redisDayLayout), err)
		}
		for name, raw := range values {
			n, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			counts[name] += n
		}
	}
	return statsFromCounts(counts), nil
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
