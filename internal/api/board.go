package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"github.com/tbeam-mesh/pacool/internal/board"
)

func registerBoardEndpoints(rest *echo.Echo, active *board.Profile) {
	group := rest.Group("/board")

	// returns the profile of the board the daemon runs on
	group.GET("/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, reprint.This(active), indentationChar)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		id := c.Param(urlParamId)
		profile, err := board.Get(id)
		if err != nil {
			return returnNotFound(c, id)
		}
		return c.JSONPretty(http.StatusOK, reprint.This(profile), indentationChar)
	})
}
