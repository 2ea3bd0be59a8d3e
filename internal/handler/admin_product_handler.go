package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/admin/products と /api/admin/categories（ADMINのみ）
type AdminProductHandler struct {
	uc      *usecase.AdminProductUsecase
	catalog *usecase.ProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.AdminProductUsecase, catalog *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc, catalog: catalog}
}

func (h *AdminProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.list)
	g.GET("/products/:id", h.detail)
	g.POST("/products", h.create)
	g.PUT("/products/:id", h.update)
	g.DELETE("/products/:id", h.remove)
	g.PATCH("/products/:id/stock", h.updateStock)
	g.GET("/categories", h.listCategories)
	g.POST("/categories", h.createCategory)
}

// multipartのフォーム値からProductInputを組み立てる。
func bindProductForm(c echo.Context) (usecase.ProductInput, error) {
	var in usecase.ProductInput

	in.Name = c.FormValue("name")
	in.Description = c.FormValue("description")
	in.Category = c.FormValue("category")
	in.GenderTag = c.FormValue("genderTag")

	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "invalid price")
		}
		in.Price = price
	}

	if v := c.FormValue("stockQty"); v != "" {
		qty, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "invalid stockQty")
		}
		in.StockQty = qty
	}

	return in, nil
}

// imageパートを開く。無ければnilを返す（任意パート）。
func openImagePart(c echo.Context) (string, io.ReadCloser, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", nil, nil
	}
	return fh.Filename, mustOpen(fh), nil
}

func mustOpen(fh *multipart.FileHeader) io.ReadCloser {
	f, err := fh.Open()
	if err != nil {
		return nil
	}
	return f
}

// 管理画面用の全商品一覧（在庫0も含む）。
func (h *AdminProductHandler) list(c echo.Context) error {
	items, err := h.catalog.ListByFilter(c.Request().Context(), repo.ProductListQuery{})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminProductHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	p, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	in, err := bindProductForm(c)
	if err != nil {
		return writeError(c, err)
	}

	filename, image, _ := openImagePart(c)
	if image != nil {
		defer image.Close()
	}

	var reader io.Reader
	if image != nil {
		reader = image
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), in, filename, reader)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	in, err := bindProductForm(c)
	if err != nil {
		return writeError(c, err)
	}

	filename, image, _ := openImagePart(c)
	if image != nil {
		defer image.Close()
	}

	var reader io.Reader
	if image != nil {
		reader = image
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), id, in, filename, reader)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) remove(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *AdminProductHandler) updateStock(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var in usecase.UpdateStockInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.UpdateStock(c.Request().Context(), currentEmail(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) createCategory(c echo.Context) error {
	var in usecase.CategoryInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
