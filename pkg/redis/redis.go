package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const maxTxRetries = 10

var ErrTxConflict = errors.New("redis: too many concurrent updates")

type IRedis interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Update runs an optimistic WATCH/MULTI read-modify-write on key. fn
	// receives the current value (nil when absent) and returns the new one.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
	AppendStream(ctx context.Context, stream string, values map[string]interface{}) (string, error)
	Close() error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get returns nil, nil when the key does not exist.
func (r *redisClient) Get(ctx context.Context, key string) ([]byte, error) {
	logrus.Debug(fmt.Sprintf("Getting key %s", key))
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting key %s: %v", key, err))
		return nil, err
	}
	return val, nil
}

func (r *redisClient) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			logrus.Debug(fmt.Sprintf("Optimistic lock failed for key %s, retrying", key))
			continue
		}
		return err
	}

	logrus.Error(fmt.Sprintf("Giving up update of key %s after %d attempts", key, maxTxRetries))
	return ErrTxConflict
}

func (r *redisClient) AppendStream(ctx context.Context, stream string, values map[string]interface{}) (string, error) {
	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: values,
	}).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error appending to stream %s: %v", stream, err))
		return "", err
	}
	return id, nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
