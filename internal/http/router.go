// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetsim/internal/http/handlers"
	"fleetsim/internal/http/middleware"
	"fleetsim/internal/modules/delivery"
	"fleetsim/internal/modules/fleet"
	"fleetsim/internal/modules/simulation"
	"fleetsim/internal/modules/weather"
	"fleetsim/internal/routing"
)

func NewRouter(
	fleetService *fleet.Service,
	deliveryService *delivery.Service,
	weatherService *weather.Service,
	routingService *routing.Service,
	engine *simulation.Engine,
	telemetry *simulation.TelemetryStore,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), gin.Recovery())

	driverHandler := handlers.NewDriverHandler(fleetService)
	r.POST("/api/drivers", driverHandler.Create)
	r.GET("/api/drivers", driverHandler.List)
	r.GET("/api/drivers/:id", driverHandler.Get)
	r.DELETE("/api/drivers/:id", driverHandler.Delete)

	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	r.POST("/api/deliveries", deliveryHandler.Create)
	r.GET("/api/deliveries", deliveryHandler.List)
	r.GET("/api/deliveries/:id", deliveryHandler.Get)

	weatherHandler := handlers.NewWeatherHandler(weatherService, engine)
	r.POST("/api/weather", weatherHandler.Create)
	r.GET("/api/weather", weatherHandler.List)
	r.POST("/api/weather/:id/toggle", weatherHandler.Toggle)
	r.DELETE("/api/weather/:id", weatherHandler.Delete)

	simulationHandler := handlers.NewSimulationHandler(engine, fleetService, telemetry)
	r.POST("/api/simulation/drivers/:id/start", simulationHandler.Start)
	r.POST("/api/simulation/drivers/:id/stop", simulationHandler.Stop)
	r.GET("/api/simulation/drivers/:id", simulationHandler.State)
	r.GET("/api/simulation/nearby", simulationHandler.Nearby)

	routeHandler := handlers.NewRouteHandler(routingService)
	r.POST("/api/routes/select", routeHandler.Select)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
