package pricing

import "github.com/shopspring/decimal"

// 値付け対象の1行。カートのプレビューと注文確定の両方が
// この形に引き当ててから Allocate を呼ぶ。
type Line struct {
	ItemID     int64
	MerchantID int64
	UnitPrice  decimal.Decimal
	Quantity   int64
}

// クーポンの割引条件だけを持つ。セッションやDBの型は持ち込まない。
type Coupon struct {
	MerchantID int64
	Value      decimal.Decimal
	Percent    bool
}

// 割引適用後の1行。LineUnitPrice が請求単価。
type PricedLine struct {
	Line
	LineUnitPrice decimal.Decimal
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Allocate は各行の請求単価を決める。純粋関数で、同じ入力なら必ず同じ出力。
// 行の並び順は入力のまま保たれる。
//
// 定額クーポンは coupon.Value を残額として、行の並び順に消費していく。
// 行の小計が残額を超えた時点でその行が残額を使い切り、以降の行は定価になる。
// パーセントクーポンは行ごとに独立で、残額の概念はない。
// クーポンは発行した出品者の商品にしか効かず、どの分岐でも単価は負にならない。
func Allocate(lines []Line, coupon *Coupon) []PricedLine {
	priced := make([]PricedLine, 0, len(lines))

	if coupon == nil {
		for _, l := range lines {
			priced = append(priced, PricedLine{Line: l, LineUnitPrice: l.UnitPrice})
		}
		return priced
	}

	budget := coupon.Value
	for _, l := range lines {
		priced = append(priced, PricedLine{Line: l, LineUnitPrice: allocateLine(l, coupon, &budget)})
	}
	return priced
}

func allocateLine(l Line, coupon *Coupon, budget *decimal.Decimal) decimal.Decimal {
	if l.MerchantID != coupon.MerchantID {
		return l.UnitPrice
	}

	if coupon.Percent {
		// 100%以上は0で止める
		rate := one.Sub(coupon.Value.Div(hundred))
		if rate.IsNegative() {
			return decimal.Zero
		}
		return floorAtZero(l.UnitPrice.Mul(rate))
	}

	qty := decimal.NewFromInt(l.Quantity)
	subtotal := l.UnitPrice.Mul(qty)
	if subtotal.GreaterThan(*budget) {
		// この行で残額を使い切り、単価に按分して引く
		unit := l.UnitPrice.Sub(budget.Div(qty))
		*budget = decimal.Zero
		return floorAtZero(unit)
	}

	// 行全体が残額に収まるので0円、残額から小計を引いて次の行へ
	*budget = budget.Sub(subtotal)
	return decimal.Zero
}

// Total は表示・確定に使う合計金額（請求単価×数量の総和）。
func Total(priced []PricedLine) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range priced {
		sum = sum.Add(p.LineUnitPrice.Mul(decimal.NewFromInt(p.Quantity)))
	}
	return sum
}

func floorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
