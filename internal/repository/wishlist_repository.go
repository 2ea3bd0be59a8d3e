package repository

import (
	"context"

	"app/internal/domain/model"
)

type WishlistRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	FindByID(ctx context.Context, entryID int64) (model.WishlistItem, error)
	Create(ctx context.Context, item model.WishlistItem) (model.WishlistItem, error)
	DeleteByID(ctx context.Context, entryID int64) error
	ExistsByUserAndProduct(ctx context.Context, userID int64, productID int64) (bool, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}
