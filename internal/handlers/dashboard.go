package handlers

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/buildcanada/trade-tracker/internal/model"
	"github.com/buildcanada/trade-tracker/internal/service"
)

// queryList gathers a facet's values from repeated query parameters,
// splitting comma-separated values as well.
func queryList(c *fiber.Ctx, key string) []string {
	var values []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, v := range strings.Split(string(raw), ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

func parseFilters(c *fiber.Ctx) service.Filters {
	var f service.Filters
	for _, v := range queryList(c, "status") {
		f.Statuses = append(f.Statuses, model.AgreementStatus(v))
	}
	for _, v := range queryList(c, "deadline") {
		f.DeadlineTypes = append(f.DeadlineTypes, service.DeadlineType(v))
	}
	f.Jurisdictions = queryList(c, "jurisdiction")
	f.Themes = queryList(c, "theme")
	return f
}

// DashboardHandler serves the public dashboard payload: the agreements that
// match the requested facets and search string, with stats recomputed over
// the filtered set.
func DashboardHandler(agreements AgreementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		all, err := agreements.GetAll(ctx)
		if err != nil {
			log.Printf("Error loading dashboard: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load agreements"})
		}

		filtered := service.FilterAgreements(all, parseFilters(c), c.Query("q"), time.Now())
		if filtered == nil {
			filtered = []model.Agreement{}
		}

		return c.JSON(fiber.Map{
			"agreements": filtered,
			"stats":      service.AgreementStats(filtered),
			"themes":     service.UniqueThemes(all),
		})
	}
}

// ActivityHandler serves the monthly status-change buckets for the chart.
func ActivityHandler(agreements AgreementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		window := service.ActivityWindow(c.Query("range", string(service.WindowTwelveMonths)))
		if window != service.WindowTwelveMonths && window != service.WindowAllTime {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "range must be 12months or alltime"})
		}

		all, err := agreements.GetAll(ctx)
		if err != nil {
			log.Printf("Error loading activity: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load agreements"})
		}

		return c.JSON(fiber.Map{
			"range":   window,
			"buckets": service.ActivityBuckets(all, window, time.Now()),
		})
	}
}

// TimelineHandler serves the laid-out history timeline for one agreement.
func TimelineHandler(agreements AgreementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		a, err := agreements.GetByID(ctx, c.Params("id"))
		if err != nil {
			log.Printf("Error loading timeline: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load agreement"})
		}
		if a == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Agreement not found"})
		}

		return c.JSON(service.BuildTimeline(a.History, time.Now()))
	}
}

// HealthHandler reports liveness, including database reachability.
func HealthHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "down", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
