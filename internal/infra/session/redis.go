package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"app/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore はRedisに買い物客ごとのセッションを置く実装。
// かごの中身はJSON、適用中クーポンはidの文字列で保存する。
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	//起動時に疎通確認
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) cartKey(userID int64) string {
	return fmt.Sprintf("session:%d:cart", userID)
}

func (s *RedisStore) couponKey(userID int64) string {
	return fmt.Sprintf("session:%d:coupon", userID)
}

func (s *RedisStore) GetCart(ctx context.Context, userID int64) (*model.Cart, error) {
	raw, err := s.client.Get(ctx, s.cartKey(userID)).Result()
	if err == redis.Nil {
		return model.NewCart(nil), nil
	}
	if err != nil {
		return nil, err
	}

	var contents map[int64]int64
	if err := json.Unmarshal([]byte(raw), &contents); err != nil {
		return nil, err
	}
	return model.NewCart(contents), nil
}

func (s *RedisStore) SaveCart(ctx context.Context, userID int64, cart *model.Cart) error {
	raw, err := json.Marshal(cart.Contents)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.cartKey(userID), raw, s.ttl).Err()
}

func (s *RedisStore) GetAppliedCoupon(ctx context.Context, userID int64) (int64, bool, error) {
	raw, err := s.client.Get(ctx, s.couponKey(userID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *RedisStore) SetAppliedCoupon(ctx context.Context, userID int64, couponID int64) error {
	return s.client.Set(ctx, s.couponKey(userID), strconv.FormatInt(couponID, 10), s.ttl).Err()
}

func (s *RedisStore) ClearAppliedCoupon(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, s.couponKey(userID)).Err()
}

func (s *RedisStore) ClearAll(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, s.cartKey(userID), s.couponKey(userID)).Err()
}
