package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// WishlistUsecase は /api/wishlist の業務ロジックです。
type WishlistUsecase struct {
	users        repo.UserRepository
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

// DI
func NewWishlistUsecase(
	users repo.UserRepository,
	wishlistRepo repo.WishlistRepository,
	productRepo repo.ProductRepository,
) *WishlistUsecase {
	return &WishlistUsecase{
		users:        users,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

type WishlistItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	InStock   bool    `json:"inStock"`
}

type AddWishlistInput struct {
	ProductID int64 `json:"productId"`
}

type WishlistCheckResponse struct {
	InWishlist bool `json:"inWishlist"`
}

type WishlistCountResponse struct {
	Count int64 `json:"count"`
}

// 一覧（商品情報を埋めて返す）。
func (u *WishlistUsecase) List(ctx context.Context, email string) ([]WishlistItemResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return nil, err
	}

	items, err := u.wishlistRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]WishlistItemResponse, 0, len(items))
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		resp = append(resp, WishlistItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			InStock:   p.StockQty > 0,
		})
	}

	return resp, nil
}

// 追加。同じ商品の二重登録は400。
func (u *WishlistUsecase) Add(ctx context.Context, email string, in AddWishlistInput) (WishlistItemResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return WishlistItemResponse{}, err
	}
	if in.ProductID <= 0 {
		return WishlistItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid productId")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return WishlistItemResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return WishlistItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.wishlistRepo.Create(ctx, model.WishlistItem{UserID: user.ID, ProductID: in.ProductID})
	if err == repo.ErrConflict {
		return WishlistItemResponse{}, NewHTTPError(http.StatusBadRequest, "product already in wishlist")
	}
	if err != nil {
		return WishlistItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return WishlistItemResponse{
		ID:        item.ID,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		InStock:   p.StockQty > 0,
	}, nil
}

// 削除（所有チェック）。
func (u *WishlistUsecase) Remove(ctx context.Context, email string, itemID int64) error {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return err
	}
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.wishlistRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "wishlist item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.UserID != user.ID {
		return NewHTTPError(http.StatusNotFound, "wishlist item not found")
	}

	if err := u.wishlistRepo.DeleteByID(ctx, itemID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// 商品がwishlistに入っているかを返す。
func (u *WishlistUsecase) Check(ctx context.Context, email string, productID int64) (WishlistCheckResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return WishlistCheckResponse{}, err
	}
	if productID <= 0 {
		return WishlistCheckResponse{}, NewHTTPError(http.StatusBadRequest, "invalid productId")
	}

	exists, err := u.wishlistRepo.ExistsByUserAndProduct(ctx, user.ID, productID)
	if err != nil {
		return WishlistCheckResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return WishlistCheckResponse{InWishlist: exists}, nil
}

// 件数。
func (u *WishlistUsecase) Count(ctx context.Context, email string) (WishlistCountResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return WishlistCountResponse{}, err
	}

	n, err := u.wishlistRepo.CountByUserID(ctx, user.ID)
	if err != nil {
		return WishlistCountResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return WishlistCountResponse{Count: n}, nil
}
