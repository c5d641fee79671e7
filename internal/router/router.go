package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"easyfindshub/internal/config"
	apperrors "easyfindshub/internal/errors"
	"easyfindshub/internal/handler"
	applog "easyfindshub/internal/middleware"
	"easyfindshub/internal/service"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Draft    *handler.DraftHandler
	Articles *handler.ArticleHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, validate *validator.Validate, authService service.AuthService, h Handlers) {
	e.HTTPErrorHandler = apperrors.GlobalErrorHandler()
	e.Use(middleware.RequestID())
	e.Use(applog.Logger(applog.WithSkipper(applog.SkipPaths("/healthz", "/metrics"))))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	e.Validator = &CustomValidator{validator: validate}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)

	// Secured routes (require a live session token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  handler.ContextKeySession,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return authService.Authenticate(c.Request().Context(), auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.ErrUnauthorized
		},
	}))

	secured.GET("/me", h.Auth.Me)

	secured.GET("/articles", h.Articles.List)
	secured.GET("/articles/:id", h.Articles.Get)

	secured.GET("/draft", h.Draft.Get)
	secured.PATCH("/draft", h.Draft.Update)
	secured.DELETE("/draft", h.Draft.Discard)
	secured.POST("/draft/image", h.Draft.StageImage)
	secured.DELETE("/draft/image", h.Draft.ClearImage)
	secured.POST("/draft/editor", h.Draft.Command)
	secured.GET("/draft/preview", h.Draft.Preview)
	secured.POST("/draft/submit", h.Draft.Submit)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
