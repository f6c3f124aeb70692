package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/buildcanada/trade-tracker/internal/model"
	"github.com/buildcanada/trade-tracker/internal/store"
)

type themeRequest struct {
	Name string `json:"name"`
}

// ListThemesHandler returns every theme.
func ListThemesHandler(themes ThemeStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		all, err := themes.GetAll(ctx)
		if err != nil {
			log.Printf("Error listing themes: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load themes"})
		}
		if all == nil {
			all = []model.Theme{}
		}

		return c.JSON(all)
	}
}

// CreateThemeHandler adds a new theme.
func CreateThemeHandler(themes ThemeStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var req themeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Theme name is required"})
		}

		theme, err := themes.Create(ctx, name)
		if err != nil {
			log.Printf("Error creating theme: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to create theme"})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Theme created successfully",
			"data":    theme,
		})
	}
}

// UpdateThemeHandler renames a theme. The rename cascades to every agreement
// referencing the old name, since agreements store the theme as free text.
func UpdateThemeHandler(themes ThemeStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var req themeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Theme name is required"})
		}

		theme, err := themes.Rename(ctx, c.Params("id"), name)
		if err != nil {
			log.Printf("Error renaming theme: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update theme"})
		}
		if theme == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Theme not found"})
		}

		return c.JSON(fiber.Map{
			"message": "Theme updated successfully",
			"data":    theme,
		})
	}
}

// DeleteThemeHandler removes a theme unless agreements still reference it.
func DeleteThemeHandler(themes ThemeStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		found, err := themes.Delete(ctx, c.Params("id"))
		if errors.Is(err, store.ErrThemeInUse) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot delete theme that is being used by agreements",
			})
		}
		if err != nil {
			log.Printf("Error deleting theme: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete theme"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Theme not found"})
		}

		return c.JSON(fiber.Map{"message": "Theme deleted successfully"})
	}
}
