package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"liyu1981.xyz/tpms-service/pkg/common"
)

// RedisDispatcher publishes each notification on the vehicle channel and keeps
// the latest alert state of the tire in a hash for dashboards.
type RedisDispatcher struct {
	client *redis.Client
}

func NewRedisDispatcher(ctx context.Context, addr, password string, db int) (*RedisDispatcher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisDispatcher{client: client}, nil
}

func NewRedisDispatcherWithClient(client *redis.Client) *RedisDispatcher {
	return &RedisDispatcher{client: client}
}

func VehicleChannel(vehicleID string) string {
	return fmt.Sprintf("vehicle:%s:notifications", vehicleID)
}

func TireAlertKey(tireID string) string {
	return fmt.Sprintf("tire:%s:alert", tireID)
}

func tireAlertFields(event Event) map[string]any {
	return map[string]any{
		"alert_type":      event.NewAlertType,
		"severity_level":  event.SeverityLevel,
		"notification_id": event.NotificationID,
		"updated_at":      event.SentAt.Unix(),
	}
}

func (r *RedisDispatcher) Dispatch(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serialize notification event: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, TireAlertKey(event.TireID), tireAlertFields(event))
	pipe.Expire(ctx, TireAlertKey(event.TireID), 30*24*time.Hour)
	pipe.Publish(ctx, VehicleChannel(event.VehicleID), payload)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}

	common.GetLoggerWith(common.LoggerNameDispatch).Debug("Notification published to redis",
		zap.String("channel", VehicleChannel(event.VehicleID)),
		zap.String("notification_id", event.NotificationID))
	return nil
}

func (r *RedisDispatcher) Close() error {
	return r.client.Close()
}
