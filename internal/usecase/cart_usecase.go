package usecase

import (
	"context"
	"net/http"

	"app/internal/pricing"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// かごはセッションストアに持ち、価格は表示のたびにカタログから引き直す。
type CartUsecase struct {
	sessions   repo.SessionStore
	itemRepo   repo.ItemRepository
	couponRepo repo.CouponRepository
}

func NewCartUsecase(
	sessions repo.SessionStore,
	itemRepo repo.ItemRepository,
	couponRepo repo.CouponRepository,
) *CartUsecase {
	return &CartUsecase{
		sessions:   sessions,
		itemRepo:   itemRepo,
		couponRepo: couponRepo,
	}
}

// price は現在のカタログ価格、line_unit_price はクーポン適用後の請求単価。
// クーポンが無いときは両者は同じ値になる。
type CartLineResponse struct {
	ItemID        int64           `json:"item_id"`
	Name          string          `json:"name"`
	MerchantID    int64           `json:"merchant_id"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineUnitPrice decimal.Decimal `json:"line_unit_price"`
	Quantity      int64           `json:"quantity"`
}

type AppliedCouponResponse struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Value   decimal.Decimal `json:"value"`
	Percent bool            `json:"percent"`
}

type CartResponse struct {
	Items      []CartLineResponse     `json:"items"`
	TotalCount int64                  `json:"total_count"`
	Total      decimal.Decimal        `json:"total"`
	Coupon     *AppliedCouponResponse `json:"coupon,omitempty"`
}

// GetCart はかごの表示。クーポンが適用されていれば、注文確定と同じ
// 引き当て・同じ配分関数でプレビューの金額を出す。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.sessions.GetCart(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	coupon, err := resolveAppliedCoupon(ctx, u.sessions, u.couponRepo, userID)
	if err != nil {
		return CartResponse{}, err
	}

	lines, items, err := resolveCartLines(ctx, u.itemRepo, cart)
	if err != nil {
		return CartResponse{}, err
	}

	priced := pricing.Allocate(lines, couponTerms(coupon))

	out := CartResponse{
		Items:      make([]CartLineResponse, 0, len(priced)),
		TotalCount: cart.TotalCount(),
		Total:      pricing.Total(priced),
	}
	for _, p := range priced {
		out.Items = append(out.Items, CartLineResponse{
			ItemID:        p.ItemID,
			Name:          items[p.ItemID].Name,
			MerchantID:    p.MerchantID,
			UnitPrice:     p.UnitPrice,
			LineUnitPrice: p.LineUnitPrice,
			Quantity:      p.Quantity,
		})
	}
	if coupon != nil {
		out.Coupon = &AppliedCouponResponse{
			ID:      coupon.ID,
			Name:    coupon.Name,
			Value:   coupon.Value,
			Percent: coupon.Percent,
		}
	}

	return out, nil
}

// AddItem は数量+1（行が無ければ作る）。
// 在庫上限はここでは見ない。見せ方の問題として表示側に任せる。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, itemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}

	// 商品チェック（公開のみ）
	it, err := u.itemRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !it.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item")
	}

	cart, err := u.sessions.GetCart(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	cart.AddItem(itemID)

	if err := u.sessions.SaveCart(ctx, userID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return u.GetCart(ctx, userID)
}

// RemoveItem は数量-1。0以下になった行はかごから消える。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, itemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}

	cart, err := u.sessions.GetCart(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	cart.RemoveItem(itemID)

	if err := u.sessions.SaveCart(ctx, userID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return u.GetCart(ctx, userID)
}

// ClearItem は数量に関係なく行ごと消す。
func (u *CartUsecase) ClearItem(ctx context.Context, userID int64, itemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}

	cart, err := u.sessions.GetCart(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	cart.ClearItem(itemID)

	if err := u.sessions.SaveCart(ctx, userID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return u.GetCart(ctx, userID)
}

// Clear はかごとクーポンをまとめて空にする。
func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.sessions.ClearAll(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return nil
}
