package usecase

import (
	"context"
	"net/http"
	"strings"

	repo "app/internal/repository"
)

// CouponUsecase は買い物客側のクーポン適用・解除。
type CouponUsecase struct {
	sessions   repo.SessionStore
	couponRepo repo.CouponRepository
	orderRepo  repo.OrderRepository
}

func NewCouponUsecase(
	sessions repo.SessionStore,
	couponRepo repo.CouponRepository,
	orderRepo repo.OrderRepository,
) *CouponUsecase {
	return &CouponUsecase{
		sessions:   sessions,
		couponRepo: couponRepo,
		orderRepo:  orderRepo,
	}
}

// NormalizeCouponName は外から来る名前入力の唯一の正規化点。
// trimして大文字に揃える。保存側も常に大文字。
func NormalizeCouponName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Apply は名前でクーポンを探して、セッションに適用する。
// 存在しない名前と無効化済みは、呼び出し側から見分けられない同じ拒否にする。
// 使用済み（キャンセル以外の注文で参照あり）は別のメッセージで拒否する。
func (u *CouponUsecase) Apply(ctx context.Context, userID int64, name string) (AppliedCouponResponse, error) {
	if userID <= 0 {
		return AppliedCouponResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	norm := NormalizeCouponName(name)
	if norm == "" {
		return AppliedCouponResponse{}, NewHTTPError(http.StatusNotFound, "invalid coupon name")
	}

	c, err := u.couponRepo.FindByName(ctx, norm)
	if err == repo.ErrNotFound {
		return AppliedCouponResponse{}, NewHTTPError(http.StatusNotFound, "invalid coupon name")
	}
	if err != nil {
		return AppliedCouponResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if c.Disabled {
		// 無効化済みは「存在しない」と同じ扱い
		return AppliedCouponResponse{}, NewHTTPError(http.StatusNotFound, "invalid coupon name")
	}

	redeemed, err := u.orderRepo.ExistsRedeemedByUser(ctx, userID, c.ID)
	if err != nil {
		return AppliedCouponResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if redeemed {
		return AppliedCouponResponse{}, NewHTTPError(http.StatusConflict, "coupon already redeemed")
	}

	if err := u.sessions.SetAppliedCoupon(ctx, userID, c.ID); err != nil {
		return AppliedCouponResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return AppliedCouponResponse{
		ID:      c.ID,
		Name:    c.Name,
		Value:   c.Value,
		Percent: c.Percent,
	}, nil
}

// Remove は適用中クーポンをセッションから外す。
func (u *CouponUsecase) Remove(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.sessions.ClearAppliedCoupon(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return nil
}
