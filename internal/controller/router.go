package controller

import (
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/notify"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

type RouterOptions struct {
	AllowOrigins []string
}

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, sink notify.Sink, opts RouterOptions) {
	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	handler.HideBanner = true
	handler.Use(middleware.RequestID())
	handler.Use(requestLogger)
	handler.Use(middleware.Recover())
	handler.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, HeaderUserId},
		AllowCredentials: true,
	}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(handler, api, services)
	newGigRoutesHandler(api, services, validate)
	newBidRoutesHandler(api, services, validate)
	newNotificationRoutesHandler(api, sink, origins)
}
