package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 1出品者が持てるクーポンの上限
const MaxCouponsPerMerchant = 5

// MerchantCouponUsecase は出品者側のクーポン管理。
// 他の出品者のクーポンは存在ごと見せない（404に落とす）。
type MerchantCouponUsecase struct {
	couponRepo repo.CouponRepository
	orderRepo  repo.OrderRepository
}

func NewMerchantCouponUsecase(
	couponRepo repo.CouponRepository,
	orderRepo repo.OrderRepository,
) *MerchantCouponUsecase {
	return &MerchantCouponUsecase{
		couponRepo: couponRepo,
		orderRepo:  orderRepo,
	}
}

type CouponInput struct {
	Name    string
	Value   decimal.Decimal
	Percent bool
}

func (u *MerchantCouponUsecase) List(ctx context.Context, merchantID int64) ([]model.Coupon, error) {
	if merchantID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	coupons, err := u.couponRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return coupons, nil
}

func (u *MerchantCouponUsecase) Get(ctx context.Context, merchantID int64, couponID int64) (model.Coupon, error) {
	return u.findOwned(ctx, merchantID, couponID)
}

// Create は上限チェックを先に通す。6枚目はフィールドの正否に関係なく拒否。
func (u *MerchantCouponUsecase) Create(ctx context.Context, merchantID int64, in CouponInput) (model.Coupon, error) {
	if merchantID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	count, err := u.couponRepo.CountByMerchant(ctx, merchantID)
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if count >= MaxCouponsPerMerchant {
		return model.Coupon{}, NewHTTPError(http.StatusUnprocessableEntity, "coupon limit reached (max 5)")
	}

	norm := NormalizeCouponName(in.Name)
	if err := u.validate(ctx, norm, in.Value, 0); err != nil {
		return model.Coupon{}, err
	}

	now := time.Now()
	created, err := u.couponRepo.Create(ctx, model.Coupon{
		MerchantID: merchantID,
		Name:       norm,
		Value:      in.Value,
		Percent:    in.Percent,
		Disabled:   false,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// Update は未使用のクーポンだけ許す。キャンセル済みでも参照が1件あれば塞ぐ。
func (u *MerchantCouponUsecase) Update(ctx context.Context, merchantID int64, couponID int64, in CouponInput) (model.Coupon, error) {
	c, err := u.findOwned(ctx, merchantID, couponID)
	if err != nil {
		return model.Coupon{}, err
	}

	if err := u.requireUnused(ctx, c.ID); err != nil {
		return model.Coupon{}, err
	}

	norm := NormalizeCouponName(in.Name)
	if err := u.validate(ctx, norm, in.Value, c.ID); err != nil {
		return model.Coupon{}, err
	}

	c.Name = norm
	c.Value = in.Value
	c.Percent = in.Percent
	c.UpdatedAt = time.Now()

	if err := u.couponRepo.Update(ctx, c); err != nil {
		if err == repo.ErrNotFound {
			return model.Coupon{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// Delete も未使用のときだけ。
func (u *MerchantCouponUsecase) Delete(ctx context.Context, merchantID int64, couponID int64) error {
	c, err := u.findOwned(ctx, merchantID, couponID)
	if err != nil {
		return err
	}

	if err := u.requireUnused(ctx, c.ID); err != nil {
		return err
	}

	if err := u.couponRepo.Delete(ctx, c.ID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SetDisabled の有効/無効の切り替えは使用済みでも常に許す。
func (u *MerchantCouponUsecase) SetDisabled(ctx context.Context, merchantID int64, couponID int64, disabled bool) (model.Coupon, error) {
	c, err := u.findOwned(ctx, merchantID, couponID)
	if err != nil {
		return model.Coupon{}, err
	}

	if err := u.couponRepo.SetDisabled(ctx, c.ID, disabled); err != nil {
		if err == repo.ErrNotFound {
			return model.Coupon{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c.Disabled = disabled
	return c, nil
}

// 他人のクーポンは「存在しない扱い」にする
func (u *MerchantCouponUsecase) findOwned(ctx context.Context, merchantID int64, couponID int64) (model.Coupon, error) {
	if merchantID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if couponID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.couponRepo.FindByID(ctx, couponID)
	if err == repo.ErrNotFound {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if c.MerchantID != merchantID {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return c, nil
}

func (u *MerchantCouponUsecase) requireUnused(ctx context.Context, couponID int64) error {
	n, err := u.orderRepo.CountByCouponID(ctx, couponID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if n > 0 {
		return NewHTTPError(http.StatusConflict, "coupon has been used and cannot be changed")
	}
	return nil
}

// validate は全フィールド分のメッセージを集めてから返す。
func (u *MerchantCouponUsecase) validate(ctx context.Context, normName string, value decimal.Decimal, excludeID int64) error {
	fields := map[string]string{}

	if normName == "" {
		fields["name"] = "name is required"
	} else {
		taken, err := u.couponRepo.ExistsByName(ctx, normName, excludeID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if taken {
			fields["name"] = "name is already taken"
		}
	}

	if value.IsNegative() {
		fields["value"] = "value must be >= 0"
	}

	if len(fields) > 0 {
		return NewValidationError(http.StatusUnprocessableEntity, fields)
	}
	return nil
}
