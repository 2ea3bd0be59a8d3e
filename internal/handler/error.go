package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

func newErrorResponse(c echo.Context, msg string) ErrorResponse {
	return ErrorResponse{
		Error:     msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request().URL.Path,
	}
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, newErrorResponse(c, he.Message))
	}

	//500
	return c.JSON(http.StatusInternalServerError, newErrorResponse(c, "internal error"))
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, newErrorResponse(c, msg))
}

// AuthJWTが入れたemailを取り出す。
func currentEmail(c echo.Context) string {
	email, _ := c.Get(middleware.CtxUserEmailKey).(string)
	return email
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
