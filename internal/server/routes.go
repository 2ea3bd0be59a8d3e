package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

// 全ハンドラをまとめてDIする入れ物。
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Wishlist     *handler.WishlistHandler
	AdminProduct *handler.AdminProductHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminUser    *handler.AdminUserHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	api := e.Group("/api")

	// 公開
	h.Auth.RegisterRoutes(api.Group("/auth"))
	h.Product.RegisterRoutes(api)

	// 要ログイン
	authed := middleware.AuthJWT(cfg)
	h.Cart.RegisterRoutes(api.Group("/cart", authed))
	h.Order.RegisterRoutes(api.Group("/orders", authed))
	h.Wishlist.RegisterRoutes(api.Group("/wishlist", authed))

	// ADMINのみ
	admin := api.Group("/admin", authed, middleware.AdminRoleGuard())
	h.AdminProduct.RegisterRoutes(admin)
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminUser.RegisterRoutes(admin)
}
