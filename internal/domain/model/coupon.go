package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// クーポン。名前は常に大文字で保存して一意にする。
// Percent=true なら Value はパーセント、false なら定額（通貨額）。
type Coupon struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID int64           `gorm:"not null;index" json:"merchant_id"`
	Name       string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Value      decimal.Decimal `gorm:"type:numeric(12,4);not null" json:"value"`
	Percent    bool            `gorm:"not null;default:false" json:"percent"`
	Disabled   bool            `gorm:"not null;default:false" json:"disabled"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
