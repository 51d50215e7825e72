package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth            *handler.AuthHandler
	Items           *handler.ItemHandler
	Cart            *handler.CartHandler
	CartCoupon      *handler.CouponHandler
	MerchantCoupons *handler.MerchantCouponHandler
	Orders          *handler.OrderHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Items.RegisterRoutes(e)
	h.Items.RegisterMerchantRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.CartCoupon.RegisterRoutes(e, cfg)
	h.MerchantCoupons.RegisterRoutes(e, cfg)
	h.Orders.RegisterRoutes(e, cfg)
}
