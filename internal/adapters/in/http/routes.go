package http

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Register installs the middleware chain and every route on e. Requests are
// traced, logged, then validated against doc before any handler runs.
func (s *Server) Register(e *echo.Echo, doc *openapi3.T) error {
	validator, err := RequestValidator(doc)
	if err != nil {
		return err
	}

	e.Use(
		middleware.Recover(),
		Tracing("storefront"),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:  true,
			LogURI:     true,
			LogStatus:  true,
			LogLatency: true,
			LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
				s.logger.LogAttrs(ctx.Request().Context(), slog.LevelInfo, "request",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Duration("latency", v.Latency),
				)
				return nil
			},
		}),
		validator,
	)

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yml", func(ctx echo.Context) error {
		return ctx.Blob(http.StatusOK, "application/yaml", openAPIDocument)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yml")))

	e.POST("/exchange", s.Exchange)
	e.POST("/riders/login", s.RiderLogin)

	api := e.Group("", s.authenticate)

	api.PATCH("/me", s.UpdateProfile)
	api.GET("/me/addresses", s.GetAddresses)
	api.POST("/me/addresses", s.AddAddress)
	api.PUT("/me/addresses/:id/default", s.SetDefaultAddress)
	api.DELETE("/me/addresses/:id", s.RemoveAddress)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.POST("/orders/:id/rider", s.AssignRider)
	api.POST("/orders/:id/pickup", s.PickupOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)

	api.GET("/riders", s.GetRiders)
	api.POST("/riders", s.CreateRider)
	api.PUT("/users/:id/role", s.ChangeUserRole)

	return nil
}
