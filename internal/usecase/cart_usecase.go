package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

// CartUsecase は /api/cart の業務ロジックです。
type CartUsecase struct {
	users        repo.UserRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

// DI
func NewCartUsecase(
	users repo.UserRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		users:        users,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// priceは現在価格。確定はcheckout時に行う。
type CartItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int64   `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	TotalItems  int64              `json:"totalItems"`
	TotalAmount float64            `json:"totalAmount"`
}

type AddCartInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartItemInput struct {
	Quantity int64 `json:"quantity"`
}

type CartCountResponse struct {
	Count int64 `json:"count"`
}

// GetCart はカート取得（空なら空配列を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, email string) (CartResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return CartResponse{}, err
	}

	return u.buildCartResponse(ctx, user.ID)
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, email string, in AddCartInput) (CartResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return CartResponse{}, err
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid productId")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
	}

	// 商品チェック
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 既存数量と合算して在庫超過を弾く
	items, err := u.cartItemRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var existingQty int64 = 0
	for _, it := range items {
		if it.ProductID == in.ProductID {
			existingQty = it.Quantity
			break
		}
	}

	if existingQty+in.Quantity > p.StockQty {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "insufficient stock for "+p.Name)
	}

	// Upsert（同一商品は加算）
	if err := u.cartItemRepo.UpsertByUserAndProduct(ctx, user.ID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, user.ID)
}

// 数量変更（所有チェック＋在庫チェック）。0以下は削除扱い。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, email string, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return CartResponse{}, err
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.UserID != user.ID {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}

	// 0以下なら明細ごと消す
	if in.Quantity <= 0 {
		if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.buildCartResponse(ctx, user.ID)
	}

	//商品の在庫チェック
	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if in.Quantity > p.StockQty {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "insufficient stock for "+p.Name)
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, user.ID)
}

// 明細削除（所有チェック）
func (u *CartUsecase) DeleteCartItem(ctx context.Context, email string, cartItemID int64) (CartResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return CartResponse{}, err
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.UserID != user.ID {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, user.ID)
}

// カートを空にする。
func (u *CartUsecase) ClearCart(ctx context.Context, email string) error {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return err
	}

	if err := u.cartItemRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// ヘッダのバッジ用に合計数量を返す。
func (u *CartUsecase) CountItems(ctx context.Context, email string) (CartCountResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return CartCountResponse{}, err
	}

	n, err := u.cartItemRepo.SumQuantityByUserID(ctx, user.ID)
	if err != nil {
		return CartCountResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CartCountResponse{Count: n}, nil
}

// 明細と現在価格をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var totalItems int64 = 0
	var totalAmount float64 = 0

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			// 商品が消えていたら明細は表示しない
			continue
		}

		subtotal := p.Price * float64(it.Quantity)

		respItems = append(respItems, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			Quantity:  it.Quantity,
			Subtotal:  subtotal,
		})

		totalItems += it.Quantity
		totalAmount += subtotal
	}

	return CartResponse{
		Items:       respItems,
		TotalItems:  totalItems,
		TotalAmount: totalAmount,
	}, nil
}
