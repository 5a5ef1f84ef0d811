package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tbeam-mesh/pacool/internal/bridge"
)

func registerTransmitEndpoints(rest *echo.Echo, b *bridge.TransmitBridge) {
	group := rest.Group("/transmit")

	group.POST("/begin/", func(c echo.Context) error {
		if b == nil {
			return returnError(c, errors.New("no transmit bridge available"))
		}
		b.OnTransmitBegin()
		return c.JSONPretty(http.StatusOK, b.Statistics(), indentationChar)
	})
	group.POST("/end/", func(c echo.Context) error {
		if b == nil {
			return returnError(c, errors.New("no transmit bridge available"))
		}
		b.OnTransmitEnd()
		return c.JSONPretty(http.StatusOK, b.Statistics(), indentationChar)
	})
}
