package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// フィルタとソートを適用した共通クエリを組み立てる。
func (r *ProductGormRepository) buildListQuery(ctx context.Context, q repo.ProductListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if strings.TrimSpace(q.Category) != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if strings.TrimSpace(q.Gender) != "" {
		tx = tx.Where("gender_tag = ?", q.Gender)
	}
	if strings.TrimSpace(q.Search) != "" {
		like := "%" + strings.TrimSpace(q.Search) + "%"
		tx = tx.Where("name ILIKE ?", like)
	}

	switch q.Sort {
	case "priceAsc":
		tx = tx.Order("price asc").Order("id asc")
	case "priceDesc":
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	return tx
}

// フィルタ付き一覧（ページングなし）
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	var products []model.Product
	if err := r.buildListQuery(ctx, q).Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// フィルタ付き一覧（page 0始まり、総件数付き）
func (r *ProductGormRepository) ListPaged(ctx context.Context, q repo.ProductListQuery, page int, size int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.buildListQuery(ctx, q)

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	offset := page * size
	if err := tx.Offset(offset).Limit(size).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// 在庫ありのみ
func (r *ProductGormRepository) ListInStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).
		Where("stock_qty > ?", 0).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"gender_tag":  p.GenderTag,
		"image_url":   p.ImageURL,
		"stock_qty":   p.StockQty,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 在庫僅少（threshold未満）の商品数
func (r *ProductGormRepository) CountLowStock(ctx context.Context, threshold int64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("stock_qty < ?", threshold).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
