package repository

import (
	"context"

	"app/internal/domain/model"
)

type CouponRepository interface {
	FindByID(ctx context.Context, id int64) (model.Coupon, error)
	// name は正規化済み（trim＋大文字）で渡す約束
	FindByName(ctx context.Context, name string) (model.Coupon, error)
	ListByMerchant(ctx context.Context, merchantID int64) ([]model.Coupon, error)
	CountByMerchant(ctx context.Context, merchantID int64) (int64, error)
	// excludeID は更新時に自分自身を除外するために使う（作成時は0）
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, c model.Coupon) (model.Coupon, error)
	Update(ctx context.Context, c model.Coupon) error
	SetDisabled(ctx context.Context, id int64, disabled bool) error
	Delete(ctx context.Context, id int64) error
}
