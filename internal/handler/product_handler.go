package handler

import (
	"net/http"
	"strconv"

	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/products と /api/categories の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.list)
	g.GET("/products/in-stock", h.inStock)
	g.GET("/products/search", h.search)
	g.GET("/products/category/:category", h.byCategory)
	g.GET("/products/gender/:gender", h.byGender)
	g.GET("/products/:id", h.detail)
	g.GET("/categories", h.categories)
}

func (h *ProductHandler) list(c echo.Context) error {
	pageParam := c.QueryParam("page")
	sizeParam := c.QueryParam("size")

	// page/size両方未指定ならページ封筒なしの素の配列で返す
	if pageParam == "" && sizeParam == "" {
		items, err := h.uc.ListByFilter(c.Request().Context(), repo.ProductListQuery{
			Category: c.QueryParam("category"),
			Gender:   c.QueryParam("gender"),
			Search:   c.QueryParam("search"),
			Sort:     c.QueryParam("sort"),
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, items)
	}

	// page（default 0、0始まり）
	page := 0
	if pageParam != "" {
		p, err := strconv.Atoi(pageParam)
		if err != nil || p < 0 {
			return badRequest(c, "invalid page")
		}
		page = p
	}

	// size（default 12）
	size := usecase.DefaultPageSize
	if sizeParam != "" {
		s, err := strconv.Atoi(sizeParam)
		if err != nil || s < 1 {
			return badRequest(c, "invalid size")
		}
		size = s
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Category: c.QueryParam("category"),
		Gender:   c.QueryParam("gender"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
		Page:     page,
		Size:     size,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) inStock(c echo.Context) error {
	items, err := h.uc.ListInStock(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) search(c echo.Context) error {
	items, err := h.uc.ListByFilter(c.Request().Context(), repo.ProductListQuery{
		Search: c.QueryParam("q"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) byCategory(c echo.Context) error {
	items, err := h.uc.ListByFilter(c.Request().Context(), repo.ProductListQuery{
		Category: c.Param("category"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) byGender(c echo.Context) error {
	items, err := h.uc.ListByFilter(c.Request().Context(), repo.ProductListQuery{
		Gender: c.Param("gender"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) categories(c echo.Context) error {
	items, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
