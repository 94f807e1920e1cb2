package controllers

import (
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// UserMiddleware exposes the token subject as "currentUser". Wardrobes travel with
// each request, so the subject is only used to scope queued tasks.
func UserMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.ErrUnauthorized
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return echo.ErrUnauthorized
		}
		userId, _ := claims["sub"].(string)
		if userId == "" {
			log.Println("Error while getting the token information!")
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		c.Set("currentUser", userId)
		return next(c)
	}
}
