package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMerchantCouponUsecaseForTest() (*MerchantCouponUsecase, *CouponRepoMock, *OrderRepoMock) {
	coupons := new(CouponRepoMock)
	orders := new(OrderRepoMock)
	return NewMerchantCouponUsecase(coupons, orders), coupons, orders
}

// =====================
// Create
// =====================

func TestMerchantCouponUsecase_Create_Success(t *testing.T) {
	uc, coupons, _ := newMerchantCouponUsecaseForTest()

	coupons.On("CountByMerchant", mock.Anything, int64(10)).Return(int64(2), nil)
	coupons.On("ExistsByName", mock.Anything, "SPRING10", int64(0)).Return(false, nil)
	coupons.On("Create", mock.Anything, mock.MatchedBy(func(c model.Coupon) bool {
		return c.MerchantID == 10 && c.Name == "SPRING10" && c.Value.Equal(dec("10")) && !c.Percent && !c.Disabled
	})).Return(model.Coupon{ID: 1, MerchantID: 10, Name: "SPRING10", Value: dec("10")}, nil)

	created, err := uc.Create(context.Background(), 10, CouponInput{Name: " spring10 ", Value: dec("10")})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	coupons.AssertExpectations(t)
}

// 6枚目はフィールドの正否に関係なく拒否。Createまで到達しないこと
func TestMerchantCouponUsecase_Create_LimitReached(t *testing.T) {
	uc, coupons, _ := newMerchantCouponUsecaseForTest()

	coupons.On("CountByMerchant", mock.Anything, int64(10)).Return(int64(5), nil)

	_, err := uc.Create(context.Background(), 10, CouponInput{Name: "SIXTH", Value: dec("5")})
	assertErrContains(t, err, "coupon limit reached (max 5)")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 422, he.Status)

	coupons.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything, mock.Anything)
	coupons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 上限チェックは検証より先。名前が空でも上限エラーになる
func TestMerchantCouponUsecase_Create_LimitCheckedBeforeValidation(t *testing.T) {
	uc, coupons, _ := newMerchantCouponUsecaseForTest()

	coupons.On("CountByMerchant", mock.Anything, int64(10)).Return(int64(5), nil)

	_, err := uc.Create(context.Background(), 10, CouponInput{Name: "  ", Value: dec("-1")})
	assertErrContains(t, err, "coupon limit reached")
}

// 検証は最初の1件で止めず、全フィールド分をまとめて返す
func TestMerchantCouponUsecase_Create_ValidationAccumulatesFields(t *testing.T) {
	uc, coupons, _ := newMerchantCouponUsecaseForTest()

	coupons.On("CountByMerchant", mock.Anything, int64(10)).Return(int64(0), nil)

	_, err := uc.Create(context.Background(), 10, CouponInput{Name: "  ", Value: dec("-3")})

	ve, ok := AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, 422, ve.Status)
	assert.Equal(t, "name is required", ve.Fields["name"])
	assert.Equal(t, "value must be >= 0", ve.Fields["value"])

	coupons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMerchantCouponUsecase_Create_NameTaken(t *testing.T) {
	uc, coupons, _ := newMerchantCouponUsecaseForTest()

	coupons.On("CountByMerchant", mock.Anything, int64(10)).Return(int64(0), nil)
	coupons.On("ExistsByName", mock.Anything, "DUP", int64(0)).Return(true, nil)

	_, err := uc.Create(context.Background(), 10, CouponInput{Name: "DUP", Value: dec("5")})

	ve, ok := AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "name is already taken", ve.Fields["name"])
}

func TestMerchantCouponUsecase_Create_ZeroValueAllowed(t *testing.T) {
	uc, coupons, _ := newMerchantCouponUsecaseForTest()

	coupons.On("CountByMerchant", mock.Anything, int64(10)).Return(int64(0), nil)
	coupons.On("ExistsByName", mock.Anything, "FREEBIE", int64(0)).Return(false, nil)
	coupons.On("Create", mock.Anything, mock.AnythingOfType("model.Coupon")).
		Return(model.Coupon{ID: 2, Name: "FREEBIE"}, nil)

	_, err := uc.Create(context.Background(), 10, CouponInput{Name: "FREEBIE", Value: dec("0")})
	assert.NoError(t, err)
}

// =====================
// Get / 所有チェック
// =====================

// 他人のクーポンと存在しないクーポンは同じ404。在否を漏らさない
func TestMerchantCouponUsecase_Get_ForeignLooksLikeMissing(t *testing.T) {
	ucA, couponsA, _ := newMerchantCouponUsecaseForTest()
	couponsA.On("FindByID", mock.Anything, int64(99)).Return(model.Coupon{}, repo.ErrNotFound)
	_, errMissing := ucA.Get(context.Background(), 10, 99)

	ucB, couponsB, _ := newMerchantCouponUsecaseForTest()
	couponsB.On("FindByID", mock.Anything, int64(5)).
		Return(model.Coupon{ID: 5, MerchantID: 20, Name: "OTHERS"}, nil)
	_, errForeign := ucB.Get(context.Background(), 10, 5)

	assert.Error(t, errMissing)
	assert.Error(t, errForeign)
	assert.Equal(t, errMissing.Error(), errForeign.Error())
}

// =====================
// Update / Delete: 未使用ガード
// =====================

func TestMerchantCouponUsecase_Update_Success(t *testing.T) {
	uc, coupons, orders := newMerchantCouponUsecaseForTest()

	coupons.On("FindByID", mock.Anything, int64(5)).
		Return(model.Coupon{ID: 5, MerchantID: 10, Name: "OLD", Value: dec("5")}, nil)
	orders.On("CountByCouponID", mock.Anything, int64(5)).Return(int64(0), nil)
	coupons.On("ExistsByName", mock.Anything, "NEW20", int64(5)).Return(false, nil)
	coupons.On("Update", mock.Anything, mock.MatchedBy(func(c model.Coupon) bool {
		return c.ID == 5 && c.Name == "NEW20" && c.Value.Equal(dec("20")) && c.Percent
	})).Return(nil)

	updated, err := uc.Update(context.Background(), 10, 5, CouponInput{Name: "new20", Value: dec("20"), Percent: true})
	assert.NoError(t, err)
	assert.Equal(t, "NEW20", updated.Name)

	coupons.AssertExpectations(t)
}

// 参照する注文が1件でもあれば塞ぐ。キャンセル済みも数に入る
func TestMerchantCouponUsecase_Update_BlockedWhenUsed(t *testing.T) {
	uc, coupons, orders := newMerchantCouponUsecaseForTest()

	coupons.On("FindByID", mock.Anything, int64(5)).
		Return(model.Coupon{ID: 5, MerchantID: 10, Name: "USED"}, nil)
	orders.On("CountByCouponID", mock.Anything, int64(5)).Return(int64(1), nil)

	_, err := uc.Update(context.Background(), 10, 5, CouponInput{Name: "X", Value: dec("1")})
	assertErrContains(t, err, "coupon has been used and cannot be changed")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)

	coupons.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMerchantCouponUsecase_Delete_Success(t *testing.T) {
	uc, coupons, orders := newMerchantCouponUsecaseForTest()

	coupons.On("FindByID", mock.Anything, int64(5)).
		Return(model.Coupon{ID: 5, MerchantID: 10, Name: "UNUSED"}, nil)
	orders.On("CountByCouponID", mock.Anything, int64(5)).Return(int64(0), nil)
	coupons.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := uc.Delete(context.Background(), 10, 5)
	assert.NoError(t, err)

	coupons.AssertExpectations(t)
}

func TestMerchantCouponUsecase_Delete_BlockedWhenUsed(t *testing.T) {
	uc, coupons, orders := newMerchantCouponUsecaseForTest()

	coupons.On("FindByID", mock.Anything, int64(5)).
		Return(model.Coupon{ID: 5, MerchantID: 10, Name: "USED"}, nil)
	orders.On("CountByCouponID", mock.Anything, int64(5)).Return(int64(3), nil)

	err := uc.Delete(context.Background(), 10, 5)
	assertErrContains(t, err, "coupon has been used and cannot be changed")

	coupons.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestMerchantCouponUsecase_Delete_Foreign_NotFound(t *testing.T) {
	uc, coupons, orders := newMerchantCouponUsecaseForTest()

	coupons.On("FindByID", mock.Anything, int64(5)).
		Return(model.Coupon{ID: 5, MerchantID: 20, Name: "OTHERS"}, nil)

	err := uc.Delete(context.Background(), 10, 5)
	assertErrContains(t, err, "not found")

	orders.AssertNotCalled(t, "CountByCouponID", mock.Anything, mock.Anything)
}

// =====================
// SetDisabled: 使用済みでも常に許す
// =====================

func TestMerchantCouponUsecase_SetDisabled_AllowedEvenWhenUsed(t *testing.T) {
	uc, coupons, orders := newMerchantCouponUsecaseForTest()

	coupons.On("FindByID", mock.Anything, int64(5)).
		Return(model.Coupon{ID: 5, MerchantID: 10, Name: "USED"}, nil)
	coupons.On("SetDisabled", mock.Anything, int64(5), true).Return(nil)

	c, err := uc.SetDisabled(context.Background(), 10, 5, true)
	assert.NoError(t, err)
	assert.True(t, c.Disabled)

	// 未使用ガードは通らない
	orders.AssertNotCalled(t, "CountByCouponID", mock.Anything, mock.Anything)
	coupons.AssertExpectations(t)
}

func TestMerchantCouponUsecase_SetDisabled_Reenable(t *testing.T) {
	uc, coupons, _ := newMerchantCouponUsecaseForTest()

	coupons.On("FindByID", mock.Anything, int64(5)).
		Return(model.Coupon{ID: 5, MerchantID: 10, Name: "PAUSED", Disabled: true}, nil)
	coupons.On("SetDisabled", mock.Anything, int64(5), false).Return(nil)

	c, err := uc.SetDisabled(context.Background(), 10, 5, false)
	assert.NoError(t, err)
	assert.False(t, c.Disabled)
}

// =====================
// List
// =====================

func TestMerchantCouponUsecase_List(t *testing.T) {
	uc, coupons, _ := newMerchantCouponUsecaseForTest()

	coupons.On("ListByMerchant", mock.Anything, int64(10)).
		Return([]model.Coupon{{ID: 1, MerchantID: 10}, {ID: 2, MerchantID: 10}}, nil)

	out, err := uc.List(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestMerchantCouponUsecase_List_Unauthorized(t *testing.T) {
	uc, _, _ := newMerchantCouponUsecaseForTest()

	_, err := uc.List(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")
}
