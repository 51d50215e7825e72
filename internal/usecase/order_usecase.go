package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/pricing"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx         repo.TransactionManager
	sessions   repo.SessionStore
	couponRepo repo.CouponRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	sessions repo.SessionStore,
	couponRepo repo.CouponRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		sessions:   sessions,
		couponRepo: couponRepo,
	}
}

type OrderItemOutput struct {
	ItemID     int64           `json:"item_id"`
	MerchantID int64           `json:"merchant_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int64           `json:"quantity"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	CouponID        *int64            `json:"coupon_id,omitempty"`
	Status          string            `json:"status"`
	DiscountedTotal decimal.Decimal   `json:"discounted_total"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

// Checkout はかごと適用中クーポンから注文を作る。
// 単価はここで確定して明細に書き込み、以後カタログやクーポンが
// 変わっても再計算しない。明細の書き込みは1トランザクション。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.sessions.GetCart(ctx, userID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	if cart.IsEmpty() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	coupon, err := resolveAppliedCoupon(ctx, u.sessions, u.couponRepo, userID)
	if err != nil {
		return OrderOutput{}, err
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//価格は確定時点でカタログから引き直す
		lines, _, err := resolveCartLines(ctx, r.Items(), cart)
		if err != nil {
			return err
		}

		//プレビューと同じ配分関数。ここが唯一の値付けの入口
		priced := pricing.Allocate(lines, couponTerms(coupon))
		total := pricing.Total(priced)

		var couponID *int64
		if coupon != nil {
			couponID = &coupon.ID
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			CouponID:        couponID,
			Status:          model.OrderStatusPending,
			DiscountedTotal: total,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderItems := make([]model.OrderItem, 0, len(priced))
		for _, p := range priced {
			orderItems = append(orderItems, model.OrderItem{
				ItemID:     p.ItemID,
				MerchantID: p.MerchantID,
				UnitPrice:  p.LineUnitPrice,
				Quantity:   p.Quantity,
				CreatedAt:  now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(model.Order{
			ID:              orderID,
			UserID:          userID,
			CouponID:        couponID,
			Status:          model.OrderStatusPending,
			DiscountedTotal: total,
			CreatedAt:       now,
		}, orderItems)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	//確定できたらかごとクーポンを片付ける
	if err := u.sessions.ClearAll(ctx, userID); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return out, nil
}

// Cancel は自分のPENDING注文だけ。キャンセルした注文は使用済み判定から
// 外れるので、同じクーポンをもう一度適用できるようになる。
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if o.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusConflict, "only pending orders can be cancelled")
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMine(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまずは固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMine(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ItemID:     it.ItemID,
			MerchantID: it.MerchantID,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		CouponID:        o.CouponID,
		Status:          string(o.Status),
		DiscountedTotal: o.DiscountedTotal,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
