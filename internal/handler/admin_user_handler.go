package handler

import (
	"net/http"
	"strconv"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/admin/users と /api/admin/stats（ADMINのみ）
type AdminUserHandler struct {
	uc    *usecase.AdminUserUsecase
	stats *usecase.AdminStatsUsecase
}

// DI
func NewAdminUserHandler(uc *usecase.AdminUserUsecase, stats *usecase.AdminStatsUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc, stats: stats}
}

func (h *AdminUserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stats", h.dashboardStats)
	g.GET("/users", h.list)
	g.GET("/users/:id", h.detail)
	g.DELETE("/users/:id", h.remove)
	g.GET("/audit-logs", h.auditLogs)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) remove(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.Delete(c.Request().Context(), currentEmail(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *AdminUserHandler) auditLogs(c echo.Context) error {
	var filter repo.AuditLogFilter

	if v := c.QueryParam("action"); v != "" {
		action := model.AuditAction(v)
		filter.Action = &action
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return badRequest(c, "invalid limit")
		}
		filter.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return badRequest(c, "invalid offset")
		}
		filter.Offset = n
	}

	out, err := h.uc.ListAuditLogs(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) dashboardStats(c echo.Context) error {
	out, err := h.stats.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
