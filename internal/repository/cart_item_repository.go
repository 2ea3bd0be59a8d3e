package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	// 同一商品はプラス（(user, product)で一意）
	UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	// カート全削除（明示操作とチェックアウトの両方で使う）
	DeleteByUserID(ctx context.Context, userID int64) error
	// 数量の合計（バッジ表示用）
	SumQuantityByUserID(ctx context.Context, userID int64) (int64, error)
}
