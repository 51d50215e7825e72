package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// 買い物客がそのクーポンを使用済みか。キャンセル済み注文は数えない
	ExistsRedeemedByUser(ctx context.Context, userID int64, couponID int64) (bool, error)
	// ステータスを問わず、クーポンを参照する注文の数。
	// キャンセル済みでも1件あれば出品者側の編集・削除は塞ぐ
	CountByCouponID(ctx context.Context, couponID int64) (int64, error)
}
