package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ItemListQuery struct {
	Page  int
	Limit int
	Q     string
}

// 商品カタログの永続化。価格や在庫の改定はカタログ管理側の責務で、
// 値付けの側は FindByID で都度読むだけ。
type ItemRepository interface {
	ListPublic(ctx context.Context, q ItemListQuery) ([]model.Item, int64, error)
	FindByID(ctx context.Context, id int64) (model.Item, error)
	Create(ctx context.Context, it model.Item) (model.Item, error)
}
