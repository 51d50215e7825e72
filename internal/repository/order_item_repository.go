package repository

import (
	"context"

	"app/internal/domain/model"
)

// 明細は作成と参照のみ。単価を後から書き換えるメソッドは持たせない。
type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
}
