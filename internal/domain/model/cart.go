package model

import "sort"

// Cart はセッションに保存する買い物かご（itemID -> 数量）。
// DBには保存せず、買い物客ごとのセッションストアにJSONで入れる。
// 数量0の行は持たない。0以下になったら行ごと消す。
type Cart struct {
	Contents map[int64]int64 `json:"contents"`
}

func NewCart(contents map[int64]int64) *Cart {
	if contents == nil {
		contents = map[int64]int64{}
	}
	return &Cart{Contents: contents}
}

func (c *Cart) AddItem(itemID int64) {
	c.Contents[itemID]++
}

func (c *Cart) RemoveItem(itemID int64) {
	c.Contents[itemID]--
	if c.Contents[itemID] <= 0 {
		delete(c.Contents, itemID)
	}
}

// 数量に関係なく行ごと消す
func (c *Cart) ClearItem(itemID int64) {
	delete(c.Contents, itemID)
}

func (c *Cart) Clear() {
	c.Contents = map[int64]int64{}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Contents) == 0
}

func (c *Cart) TotalCount() int64 {
	var n int64
	for _, q := range c.Contents {
		n += q
	}
	return n
}

// ItemIDs は itemID を昇順で返す。
// プレビューと注文確定が同じ並びで行を処理するための決め。
func (c *Cart) ItemIDs() []int64 {
	ids := make([]int64, 0, len(c.Contents))
	for id := range c.Contents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
