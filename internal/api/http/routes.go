package httpapi

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/home-dashboard/internal/common"
	"github.com/i474232898/home-dashboard/internal/dashboard"
	"github.com/i474232898/home-dashboard/internal/store"
)

var validate = validator.New()

// Builder produces a fresh view model for every request.
type Builder interface {
	Build(ctx context.Context) dashboard.ViewModel
}

// PageConfig controls how the HTML page behaves on the device.
type PageConfig struct {
	RefreshSeconds int
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, builder Builder, statuses dashboard.StatusStore, page PageConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		q, err := parsePageQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		vm := builder.Build(c.UserContext())
		vm.RequestID = requestID(c)

		now := vm.GeneratedAt
		body, err := renderPage(pageData{
			ViewModel:      vm,
			Device:         q.resolveDevice(c.Get(fiber.HeaderUserAgent)),
			RefreshSeconds: page.RefreshSeconds,
			Now:            &now,
		})
		if err != nil {
			log.Printf("ERROR: rendering dashboard: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard")
		}

		c.Type("html", "utf-8")
		return c.Send(body)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		vm := builder.Build(c.UserContext())
		vm.RequestID = requestID(c)
		return c.JSON(vm)
	})

	v1.Get("/status", func(c *fiber.Ctx) error {
		reports, err := statuses.All()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no upstream probe has completed yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read probe history")
		}

		latest := reports[len(reports)-1]
		return c.JSON(fiber.Map{
			"healthy": latest.Healthy,
			"latest":  latest,
			"reports": reports,
		})
	})
}

// pageQuery holds query parameters for the dashboard page.
type pageQuery struct {
	Device string `validate:"oneof=auto kindle nest"`
}

func parsePageQuery(c *fiber.Ctx) (pageQuery, error) {
	q := pageQuery{Device: c.Query("device", "auto")}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// resolveDevice picks the layout, detecting e-readers from the user agent
// when the caller asked for auto.
func (q pageQuery) resolveDevice(userAgent string) string {
	if q.Device != "auto" {
		return q.Device
	}
	if common.HasAnyFold(userAgent, "kindle", "silk") {
		return "kindle"
	}
	return "nest"
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
