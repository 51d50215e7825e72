package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	"app/internal/pricing"
	repo "app/internal/repository"
)

// resolveCartLines はかごの中身を現在のカタログ価格で値付け行に引き当てる。
// 価格は呼び出し時点でDBから読む（かごに入れた時点の価格は使わない）。
// 行は itemID 昇順。プレビューと注文確定が同じ引き当てを通ることで、
// 定額クーポンの配分が両者で完全に一致する。
func resolveCartLines(ctx context.Context, items repo.ItemRepository, cart *model.Cart) ([]pricing.Line, map[int64]model.Item, error) {
	lines := make([]pricing.Line, 0, len(cart.Contents))
	resolved := make(map[int64]model.Item, len(cart.Contents))

	for _, id := range cart.ItemIDs() {
		it, err := items.FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return nil, nil, NewHTTPError(http.StatusBadRequest, "invalid item in cart")
		}
		if err != nil {
			return nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !it.IsActive {
			return nil, nil, NewHTTPError(http.StatusBadRequest, "invalid item in cart")
		}

		resolved[id] = it
		lines = append(lines, pricing.Line{
			ItemID:     id,
			MerchantID: it.MerchantID,
			UnitPrice:  it.Price,
			Quantity:   cart.Contents[id],
		})
	}

	return lines, resolved, nil
}

// couponTerms はDBのクーポンを値付け用の条件に落とす。
func couponTerms(c *model.Coupon) *pricing.Coupon {
	if c == nil {
		return nil
	}
	return &pricing.Coupon{
		MerchantID: c.MerchantID,
		Value:      c.Value,
		Percent:    c.Percent,
	}
}

// resolveAppliedCoupon はセッションの適用中クーポンidを実体に引き当てる。
// クーポンが消えていた場合はセッション側も片付けて「適用なし」にする。
func resolveAppliedCoupon(ctx context.Context, sessions repo.SessionStore, coupons repo.CouponRepository, userID int64) (*model.Coupon, error) {
	id, ok, err := sessions.GetAppliedCoupon(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	if !ok {
		return nil, nil
	}

	c, err := coupons.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		if err := sessions.ClearAppliedCoupon(ctx, userID); err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "session error")
		}
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return &c, nil
}
