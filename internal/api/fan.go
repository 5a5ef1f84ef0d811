package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"github.com/tbeam-mesh/pacool/internal/controller"
)

func registerFanEndpoints(rest *echo.Echo, c controller.FanController) {
	group := rest.Group("/fan")

	// returns the current fan controller status
	group.GET("/", func(ctx echo.Context) error {
		data := reprint.This(c.Status())
		return ctx.JSONPretty(http.StatusOK, data, indentationChar)
	})
}
