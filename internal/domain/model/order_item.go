package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。merchant_id は作成時点の商品から写し取る。
// unit_price は割引適用後の請求単価で、作成後に書き換える口は存在しない。
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64           `gorm:"not null;index" json:"order_id"`
	ItemID     int64           `gorm:"not null;index" json:"item_id"`
	MerchantID int64           `gorm:"not null;index" json:"merchant_id"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,4);not null" json:"unit_price"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
