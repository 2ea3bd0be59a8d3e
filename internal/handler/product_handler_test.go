package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/domain/model"
	"app/internal/handler"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// 固定データを返すスタブ（一覧系ハンドラの形を見るだけなのでmock不要）。
type productRepoStub struct {
	items []model.Product
}

func (s *productRepoStub) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	return s.items, nil
}

func (s *productRepoStub) ListPaged(ctx context.Context, q repo.ProductListQuery, page int, size int) ([]model.Product, int64, error) {
	return s.items, int64(len(s.items)), nil
}

func (s *productRepoStub) ListInStock(ctx context.Context) ([]model.Product, error) {
	return s.items, nil
}

func (s *productRepoStub) FindByID(ctx context.Context, id int64) (model.Product, error) {
	for _, p := range s.items {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (s *productRepoStub) Create(ctx context.Context, p model.Product) (model.Product, error) {
	return p, nil
}

func (s *productRepoStub) Update(ctx context.Context, p model.Product) error { return nil }
func (s *productRepoStub) Delete(ctx context.Context, id int64) error        { return nil }

func (s *productRepoStub) Count(ctx context.Context) (int64, error) {
	return int64(len(s.items)), nil
}

func (s *productRepoStub) CountLowStock(ctx context.Context, threshold int64) (int64, error) {
	return 0, nil
}

type categoryRepoStub struct{}

func (categoryRepoStub) ListAll(ctx context.Context) ([]model.Category, error) { return nil, nil }
func (categoryRepoStub) Create(ctx context.Context, c model.Category) (model.Category, error) {
	return c, nil
}

func newProductEcho(items []model.Product) *echo.Echo {
	e := echo.New()
	uc := usecase.NewProductUsecase(&productRepoStub{items: items}, categoryRepoStub{})
	handler.NewProductHandler(uc).RegisterRoutes(e.Group("/api"))
	handler.NewAdminProductHandler(nil, uc).RegisterRoutes(e.Group("/api/admin"))
	return e
}

// page/size未指定の一覧はページ封筒なしの素の配列。
func TestProductList_WithoutPagingParams_ReturnsPlainArray(t *testing.T) {
	e := newProductEcho([]model.Product{
		{ID: 1, Name: "Tshirt", Price: 499},
		{ID: 2, Name: "Jeans", Price: 1299},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var items []model.Product
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)
	assert.Equal(t, "Tshirt", items[0].Name)
}

func TestProductList_WithPagingParams_ReturnsPageEnvelope(t *testing.T) {
	e := newProductEcho([]model.Product{{ID: 1, Name: "Tshirt", Price: 499}})

	req := httptest.NewRequest(http.MethodGet, "/api/products?page=0&size=12", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var page map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Contains(t, page, "content")
	assert.Contains(t, page, "totalElements")
}

// sizeだけの指定でも封筒で返す。
func TestProductList_SizeOnly_ReturnsPageEnvelope(t *testing.T) {
	e := newProductEcho([]model.Product{{ID: 1, Name: "Tshirt", Price: 499}})

	req := httptest.NewRequest(http.MethodGet, "/api/products?size=5", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var page map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Contains(t, page, "content")
}

func TestAdminProductRoutes_ListAndDetail(t *testing.T) {
	e := newProductEcho([]model.Product{
		{ID: 1, Name: "Tshirt", Price: 499},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var items []model.Product
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/products/1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var p model.Product
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Tshirt", p.Name)
}
