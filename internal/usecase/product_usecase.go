package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ページングの既定値（フロントのグリッドが12件/頁）
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Page はページング応答の共通封筒です。
type Page struct {
	Content       interface{} `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
	First         bool        `json:"first"`
	Last          bool        `json:"last"`
}

// pageはゼロ始まり。
func NewPage(content interface{}, page int, size int, total int64) Page {
	totalPages := int((total + int64(size) - 1) / int64(size))

	return Page{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// GET /products の入力DTO
type ListProductsInput struct {
	Category string
	Gender   string
	Search   string
	Sort     string
	Page     int
	Size     int
}

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// 商品一覧（絞り込み＋ページング）。
func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (Page, error) {
	if in.Page < 0 {
		in.Page = 0
	}
	if in.Size <= 0 {
		in.Size = DefaultPageSize
	}
	if in.Size > MaxPageSize {
		in.Size = MaxPageSize
	}

	q := repo.ProductListQuery{
		Category: in.Category,
		Gender:   in.Gender,
		Search:   in.Search,
		Sort:     in.Sort,
	}

	items, total, err := u.productRepo.ListPaged(ctx, q, in.Page, in.Size)
	if err != nil {
		return Page{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return NewPage(items, in.Page, in.Size, total), nil
}

// 絞り込みだけの一覧（ページングなしの補助ルート用）。
func (u *ProductUsecase) ListByFilter(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx, q)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 商品詳細。
func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return p, nil
}

// 在庫ありの商品だけ返す。
func (u *ProductUsecase) ListInStock(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListInStock(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// カテゴリ一覧。
func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
