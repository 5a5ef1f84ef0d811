package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const EndpointPathMetrics = "/metrics/"

// CreateWebserver creates the server for the prometheus metrics endpoint
func CreateWebserver() *echo.Echo {
	webserver := echo.New()
	webserver.HideBanner = true
	webserver.HidePort = true

	// Root level middleware
	webserver.Pre(middleware.AddTrailingSlash())

	webserver.Use(middleware.Secure())
	webserver.Use(middleware.Recover())

	webserver.GET(EndpointPathMetrics, echo.WrapHandler(promhttp.Handler()))

	return webserver
}
