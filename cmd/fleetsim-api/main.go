// README: Entry point; loads config, wires services, starts HTTP server and simulation loop.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fleetsim/internal/config"
	httptransport "fleetsim/internal/http"
	"fleetsim/internal/infra"
	"fleetsim/internal/modules/delivery"
	"fleetsim/internal/modules/fleet"
	"fleetsim/internal/modules/simulation"
	"fleetsim/internal/modules/weather"
	"fleetsim/internal/routing"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := infra.InitSchema(ctx, dbPool); err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	fleetStore := fleet.NewStore(dbPool)
	fleetSvc := fleet.NewService(fleetStore)

	deliveryStore := delivery.NewStore(dbPool)
	deliverySvc := delivery.NewService(deliveryStore)

	weatherStore := weather.NewStore(dbPool)
	weatherSvc := weather.NewService(weatherStore)

	provider, err := routing.NewHTTPProvider(cfg.Router)
	if err != nil {
		log.Fatal(err)
	}
	routingSvc := routing.NewService(provider, weatherSvc)

	telemetry := simulation.NewTelemetryStore(redisClient)
	engine := simulation.NewEngine(routingSvc, deliverySvc, telemetry, cfg.Simulation)

	go engine.Run(ctx)

	handler := httptransport.NewRouter(fleetSvc, deliverySvc, weatherSvc, routingSvc, engine, telemetry)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	log.Printf("fleetsim listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
