package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"marketplace/internal/auth"
	"marketplace/internal/handler"
)

// Handlers はルート登録に必要なハンドラー一式。
type Handlers struct {
	Auth   *handler.AuthHandler
	Item   *handler.ItemHandler
	Basket *handler.BasketHandler
	Order  *handler.OrderHandler
	User   *handler.UserHandler
}

// Start はルートを登録してHTTPサーバーを起動する。
func Start(addr string, issuer *auth.JWTIssuer, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	h.Auth.RegisterRoutes(e)
	h.Item.RegisterRoutes(e, issuer)
	h.Basket.RegisterRoutes(e, issuer)
	h.Order.RegisterRoutes(e, issuer)
	h.User.RegisterRoutes(e, issuer)

	return e.Start(addr)
}
