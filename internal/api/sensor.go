package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tbeam-mesh/pacool/internal/controller"
)

type SensorResult struct {
	Temperature       *float64 `json:"temperature"`
	WindowMax         *float64 `json:"windowMax"`
	WindowAvg         *float64 `json:"windowAvg"`
	LastFault         string   `json:"lastFault,omitempty"`
	ConsecutiveFaults int      `json:"consecutiveFaults"`
	SensorFaults      uint64   `json:"sensorFaults"`
}

func registerSensorEndpoints(rest *echo.Echo, c controller.FanController) {
	group := rest.Group("/sensor")

	// returns the last valid PA temperature and the recent fault history
	group.GET("/", func(ctx echo.Context) error {
		status := c.Status()
		data := SensorResult{
			Temperature:       status.Temperature,
			WindowMax:         status.WindowMax,
			WindowAvg:         status.WindowAvg,
			LastFault:         status.LastFault,
			ConsecutiveFaults: status.ConsecutiveFaults,
			SensorFaults:      status.Statistics.SensorFaults,
		}
		return ctx.JSONPretty(http.StatusOK, data, indentationChar)
	})
}
