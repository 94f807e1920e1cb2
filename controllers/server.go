package controllers

import (
	"net/http"

	"outfitapi/models"
	"outfitapi/recommender"
	"outfitapi/services"

	"github.com/go-playground/validator"
	"github.com/hibiken/asynq"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// SetupServer wires the HTTP API. The asynq client and inspector may be nil,
// in which case daily outfit routes answer 503.
func SetupServer(
	outfitRecommender *recommender.Recommender,
	asynqClient *asynq.Client,
	asynqInspector *asynq.Inspector,
) *echo.Echo {
	e := echo.New()

	v := validator.New()
	v.RegisterValidation("category", models.ValidateCategory)
	v.RegisterValidation("isodate", models.ValidateDate)
	e.Validator = &CustomValidator{validator: v}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	outfitController := OutfitController{
		Recommender:    outfitRecommender,
		AsynqClient:    asynqClient,
		AsynqInspector: asynqInspector,
	}
	outfitGroup := e.Group("/outfits", echojwt.JWT(services.JWTSecret()), UserMiddleware)
	outfitController.OutfitRoutes(outfitGroup)

	return e
}
