package repository

import (
	"context"

	"app/internal/domain/model"
)

// 買い物客ごとのセッション。かごの中身と適用中クーポンを持つ。
// セッション同士は完全に独立なので、ここに横断的なロックは要らない。
type SessionStore interface {
	// かごが無ければ空のかごを返す
	GetCart(ctx context.Context, userID int64) (*model.Cart, error)
	SaveCart(ctx context.Context, userID int64, cart *model.Cart) error

	GetAppliedCoupon(ctx context.Context, userID int64) (int64, bool, error)
	SetAppliedCoupon(ctx context.Context, userID int64, couponID int64) error
	ClearAppliedCoupon(ctx context.Context, userID int64) error

	// かごとクーポンをまとめて消す（注文確定後・ログアウト時）
	ClearAll(ctx context.Context, userID int64) error
}
