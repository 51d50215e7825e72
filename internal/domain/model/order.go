package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// 注文。明細の単価は作成時に確定し、以後の再計算はしない。
type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	CouponID        *int64          `gorm:"index" json:"coupon_id,omitempty"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	DiscountedTotal decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0" json:"discounted_total"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
