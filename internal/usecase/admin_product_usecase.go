package usecase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 商品画像が無いときに使うパス
const DefaultProductImageURL = "/uploads/default-product.jpg"

// 画像の保存先の約束。ローカルディスク実装をinfraに置く。
type ImageStore interface {
	Save(filename string, r io.Reader) (string, error)
}

type AdminProductUsecase struct {
	users         repo.UserRepository
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	categoryRepo  repo.CategoryRepository
	auditRepo     repo.AuditLogRepository
	images        ImageStore
}

// DI
func NewAdminProductUsecase(
	users repo.UserRepository,
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	categoryRepo repo.CategoryRepository,
	auditRepo repo.AuditLogRepository,
	images ImageStore,
) *AdminProductUsecase {
	return &AdminProductUsecase{
		users:         users,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		categoryRepo:  categoryRepo,
		auditRepo:     auditRepo,
		images:        images,
	}
}

// multipartのproductパートをbindしたもの。imageは別パート。
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	GenderTag   string  `json:"genderTag"`
	StockQty    int64   `json:"stockQty"`
}

type UpdateStockInput struct {
	StockQty int64 `json:"stockQty"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	if in.StockQty < 0 {
		return NewHTTPError(http.StatusBadRequest, "stockQty must not be negative")
	}
	return nil
}

// 商品作成。imageFilenameが空ならデフォルト画像を使う。
func (u *AdminProductUsecase) CreateProduct(ctx context.Context, in ProductInput, imageFilename string, image io.Reader) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	imageURL := DefaultProductImageURL
	if image != nil && imageFilename != "" {
		url, err := u.images.Save(imageFilename, image)
		if err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "image save failed")
		}
		imageURL = url
	}

	p := model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		GenderTag:   in.GenderTag,
		ImageURL:    imageURL,
		StockQty:    in.StockQty,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

// 商品更新。imageを渡されたときだけ画像を差し替える。
func (u *AdminProductUsecase) UpdateProduct(ctx context.Context, id int64, in ProductInput, imageFilename string, image io.Reader) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.GenderTag = in.GenderTag
	p.StockQty = in.StockQty

	if image != nil && imageFilename != "" {
		url, err := u.images.Save(imageFilename, image)
		if err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "image save failed")
		}
		p.ImageURL = url
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return p, nil
}

// 商品削除。
func (u *AdminProductUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.productRepo.Delete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// 在庫数の直接更新。変更前後を監査ログに残す。
func (u *AdminProductUsecase) UpdateStock(ctx context.Context, adminEmail string, id int64, in UpdateStockInput) (model.Product, error) {
	admin, err := resolveUser(ctx, u.users, adminEmail)
	if err != nil {
		return model.Product{}, err
	}
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.StockQty < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stockQty must not be negative")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	before := p.StockQty

	if err := u.inventoryRepo.SetStock(ctx, id, in.StockQty); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, admin.ID, model.AuditActionUpdateStock, model.AuditResourceProduct, id,
		map[string]int64{"stockQty": before},
		map[string]int64{"stockQty": in.StockQty},
	)

	p.StockQty = in.StockQty
	return p, nil
}

// カテゴリ作成。name重複は400。
func (u *AdminProductUsecase) CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        in.Name,
		Description: in.Description,
	})
	if err == repo.ErrConflict {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "category already exists")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

// カテゴリ一覧（管理画面用）。
func (u *AdminProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 監査ログは失敗しても本処理を止めない。
func (u *AdminProductUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, resource model.AuditResourceType, resourceID int64, before interface{}, after interface{}) {
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)

	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
	})
}
