package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleがMERCHANTかどうかを確認します。

func MerchantRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//買い物客は拒否、出品者だけ許可
			if role != "MERCHANT" {
				return c.JSON(http.StatusForbidden, errorJSON("merchant only"))
			}

			return next(c)
		}
	}
}
