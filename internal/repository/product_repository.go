package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧検索。フィルタは全部任意（AND条件）。
type ProductListQuery struct {
	Category string
	Gender   string
	Search   string // nameの部分一致（大文字小文字無視）
	Sort     string // priceAsc / priceDesc / ""（新着順）
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	//page は0始まり。総件数も返す。
	ListPaged(ctx context.Context, q ProductListQuery, page int, size int) ([]model.Product, int64, error)
	ListInStock(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	//ダッシュボード用
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int64) (int64, error)
}

// 在庫の更新だけを約束。注文確定・キャンセルのトランザクション内で使う。
type InventoryRepository interface {
	// 在庫の現在値を設定
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
}
