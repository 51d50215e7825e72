package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCouponUsecaseForTest() (*CouponUsecase, *SessionStoreMock, *CouponRepoMock, *OrderRepoMock) {
	sessions := new(SessionStoreMock)
	coupons := new(CouponRepoMock)
	orders := new(OrderRepoMock)
	return NewCouponUsecase(sessions, coupons, orders), sessions, coupons, orders
}

func TestNormalizeCouponName(t *testing.T) {
	assert.Equal(t, "PCT25", NormalizeCouponName(" pct25 "))
	assert.Equal(t, "DOLLAR100", NormalizeCouponName("Dollar100"))
	assert.Equal(t, "", NormalizeCouponName("   "))
}

func TestCouponUsecase_Apply_Unauthorized(t *testing.T) {
	uc, _, _, _ := newCouponUsecaseForTest()

	_, err := uc.Apply(context.Background(), 0, "PCT25")
	assertErrContains(t, err, "unauthorized")
}

func TestCouponUsecase_Apply_EmptyName(t *testing.T) {
	uc, _, _, _ := newCouponUsecaseForTest()

	_, err := uc.Apply(context.Background(), 1, "   ")
	assertErrContains(t, err, "invalid coupon name")
}

func TestCouponUsecase_Apply_NormalizesBeforeLookup(t *testing.T) {
	uc, sessions, coupons, orders := newCouponUsecaseForTest()

	// 小文字・空白付きで来ても、検索は正規化した名前で行う
	coupons.On("FindByName", mock.Anything, "PCT25").
		Return(model.Coupon{ID: 7, MerchantID: 10, Name: "PCT25", Value: dec("25"), Percent: true}, nil)
	orders.On("ExistsRedeemedByUser", mock.Anything, int64(1), int64(7)).Return(false, nil)
	sessions.On("SetAppliedCoupon", mock.Anything, int64(1), int64(7)).Return(nil)

	out, err := uc.Apply(context.Background(), 1, "  pct25 ")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "PCT25", out.Name)
	assert.True(t, out.Percent)

	coupons.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestCouponUsecase_Apply_UnknownName(t *testing.T) {
	uc, _, coupons, _ := newCouponUsecaseForTest()

	coupons.On("FindByName", mock.Anything, "NOPE").Return(model.Coupon{}, repo.ErrNotFound)

	_, err := uc.Apply(context.Background(), 1, "NOPE")
	assertErrContains(t, err, "invalid coupon name")
}

// 無効化済みは「存在しない」と同じメッセージで拒否する。
// 外から見て在否を区別できないこと
func TestCouponUsecase_Apply_DisabledLooksLikeUnknown(t *testing.T) {
	ucA, _, couponsA, _ := newCouponUsecaseForTest()
	couponsA.On("FindByName", mock.Anything, "NOPE").Return(model.Coupon{}, repo.ErrNotFound)
	_, errUnknown := ucA.Apply(context.Background(), 1, "NOPE")

	ucB, _, couponsB, _ := newCouponUsecaseForTest()
	couponsB.On("FindByName", mock.Anything, "GONE10").
		Return(model.Coupon{ID: 3, MerchantID: 10, Name: "GONE10", Value: dec("10"), Disabled: true}, nil)
	_, errDisabled := ucB.Apply(context.Background(), 1, "GONE10")

	assert.Error(t, errUnknown)
	assert.Error(t, errDisabled)
	assert.Equal(t, errUnknown.Error(), errDisabled.Error())
}

func TestCouponUsecase_Apply_AlreadyRedeemed(t *testing.T) {
	uc, sessions, coupons, orders := newCouponUsecaseForTest()

	coupons.On("FindByName", mock.Anything, "PCT25").
		Return(model.Coupon{ID: 7, MerchantID: 10, Name: "PCT25", Value: dec("25"), Percent: true}, nil)
	orders.On("ExistsRedeemedByUser", mock.Anything, int64(1), int64(7)).Return(true, nil)

	_, err := uc.Apply(context.Background(), 1, "PCT25")
	assertErrContains(t, err, "coupon already redeemed")

	sessions.AssertNotCalled(t, "SetAppliedCoupon", mock.Anything, mock.Anything, mock.Anything)
}

// キャンセル済み注文しか残っていなければ、もう一度適用できる。
// 使用済み判定はリポジトリ側でキャンセルを除外する約束なので、
// ここでは「未使用」と返ってきたら通ることを見る
func TestCouponUsecase_Apply_AfterCancellation(t *testing.T) {
	uc, sessions, coupons, orders := newCouponUsecaseForTest()

	coupons.On("FindByName", mock.Anything, "PCT25").
		Return(model.Coupon{ID: 7, MerchantID: 10, Name: "PCT25", Value: dec("25"), Percent: true}, nil)
	orders.On("ExistsRedeemedByUser", mock.Anything, int64(1), int64(7)).Return(false, nil)
	sessions.On("SetAppliedCoupon", mock.Anything, int64(1), int64(7)).Return(nil)

	_, err := uc.Apply(context.Background(), 1, "PCT25")
	assert.NoError(t, err)

	sessions.AssertExpectations(t)
}

func TestCouponUsecase_Remove(t *testing.T) {
	uc, sessions, _, _ := newCouponUsecaseForTest()

	sessions.On("ClearAppliedCoupon", mock.Anything, int64(1)).Return(nil)

	err := uc.Remove(context.Background(), 1)
	assert.NoError(t, err)

	sessions.AssertExpectations(t)
}

func TestCouponUsecase_Remove_Unauthorized(t *testing.T) {
	uc, _, _, _ := newCouponUsecaseForTest()

	err := uc.Remove(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")
}
