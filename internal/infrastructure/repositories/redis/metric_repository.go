package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

const metricSeriesLimit = 1000

// RedisMetricRepository keeps one capped list per server, newest at the
// head, plus a set of known server IDs for the latest-per-server scan.
type RedisMetricRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisMetricRepository(client *redis.Client) ports.MetricRepository {
	return &RedisMetricRepository{client: client, prefix: "hostdeck:metrics:"}
}

func (r *RedisMetricRepository) seriesKey(serverID string) string {
	return r.prefix + serverID
}

func (r *RedisMetricRepository) serversKey() string {
	return r.prefix + "servers"
}

func (r *RedisMetricRepository) Append(ctx context.Context, sample domain.MetricSample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal metric sample: %w", err)
	}

	key := r.seriesKey(sample.ServerID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, metricSeriesLimit-1)
	pipe.SAdd(ctx, r.serversKey(), sample.ServerID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append metric sample: %w", err)
	}
	return nil
}

func (r *RedisMetricRepository) Recent(ctx context.Context, serverID string, limit int) ([]domain.MetricSample, error) {
	if limit <= 0 {
		limit = metricSeriesLimit
	}
	raw, err := r.client.LRange(ctx, r.seriesKey(serverID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read metric series: %w", err)
	}

	out := make([]domain.MetricSample, 0, len(raw))
	for _, item := range raw {
		var sample domain.MetricSample
		if err := json.Unmarshal([]byte(item), &sample); err != nil {
			continue
		}
		out = append(out, sample)
	}
	return out, nil
}

func (r *RedisMetricRepository) Latest(ctx context.Context) ([]domain.MetricSample, error) {
	serverIDs, err := r.client.SMembers(ctx, r.serversKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list metric servers: %w", err)
	}

	out := make([]domain.MetricSample, 0, len(serverIDs))
	for _, id := range serverIDs {
		raw, err := r.client.LIndex(ctx, r.seriesKey(id), 0).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read latest sample: %w", err)
		}
		var sample domain.MetricSample
		if err := json.Unmarshal([]byte(raw), &sample); err != nil {
			continue
		}
		out = append(out, sample)
	}
	return out, nil
}
