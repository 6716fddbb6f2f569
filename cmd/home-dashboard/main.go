package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	httpapi "github.com/i474232898/home-dashboard/internal/api/http"
	"github.com/i474232898/home-dashboard/internal/config"
	"github.com/i474232898/home-dashboard/internal/dashboard"
	"github.com/i474232898/home-dashboard/internal/environment"
	"github.com/i474232898/home-dashboard/internal/scheduler"
	"github.com/i474232898/home-dashboard/internal/store"
	"github.com/i474232898/home-dashboard/internal/transit"
	"github.com/i474232898/home-dashboard/internal/upstream"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls; each call carries its own deadline.
	httpClient := &http.Client{}
	breaker := upstream.WithBreaker(cfg.BreakerFailures)

	arrivals := transit.NewFetcher(httpClient, cfg.LTAAPIKey, cfg.LTAAPIBaseURL, cfg.HTTPTimeout, breaker)
	env := environment.NewFetcher(httpClient, environment.EndpointsFrom(cfg.EnvironmentURL), cfg.HTTPTimeout, breaker)

	routes := make([]dashboard.Route, 0, len(cfg.BusServices))
	for _, svc := range cfg.BusServices {
		routes = append(routes, dashboard.Route{
			StopID:   svc.StopCode,
			RouteID:  svc.ServiceNo,
			StopName: svc.StopName,
		})
	}

	service := dashboard.NewService(arrivals, env, dashboard.Settings{
		Routes:     routes,
		Area:       cfg.WeatherArea,
		PM25Region: cfg.PM25Region,
	})

	// Probe history with configured retention.
	statuses := store.NewMemoryStore(cfg.StatusMaxHistory, cfg.StatusMaxAge)

	sched := scheduler.New(cfg.ProbeInterval, 3*cfg.HTTPTimeout, service, statuses)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "home-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// A page waits on every upstream call, each bounded by HTTPTimeout.
		WriteTimeout: cfg.HTTPTimeout + 10*time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "home-dashboard",
		})
	})

	httpapi.RegisterRoutes(app, service, statuses, httpapi.PageConfig{
		RefreshSeconds: cfg.RefreshSeconds,
	})

	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: serving %d bus services on %s", len(routes), cfg.Addr())

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
