package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 商品。MerchantID は出品者のユーザーID。
// 価格はカタログ管理側で変わり得るので、参照は常に都度読む。
type Item struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID  int64           `gorm:"not null;index" json:"merchant_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,4);not null" json:"price"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
