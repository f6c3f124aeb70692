package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/buildcanada/trade-tracker/internal/model"
)

// agreementRequest is the create/update body. The canonical wire format is
// snake_case, but older admin page builds sent camelCase for a couple of
// fields, so both spellings are accepted.
type agreementRequest struct {
	Title         string                `json:"title"`
	Summary       string                `json:"summary"`
	Description   string                `json:"description"`
	Status        model.AgreementStatus `json:"status"`
	Deadline      *string               `json:"deadline"`
	SourceURL     *string               `json:"source_url"`
	SourceURLAlt  *string               `json:"sourceUrl"`
	LaunchDate    *string               `json:"launch_date"`
	LaunchDateAlt *string               `json:"launchDate"`
	Theme         *string               `json:"theme"`
	Jurisdictions []model.Jurisdiction  `json:"jurisdictions"`
	History       []model.HistoryEntry  `json:"agreement_history"`
}

func (r agreementRequest) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(r.Summary) == "" {
		return fmt.Errorf("summary is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if !model.ValidAgreementStatus(r.Status) {
		return fmt.Errorf("status %q is not a valid agreement status", r.Status)
	}
	if len(r.Jurisdictions) == 0 {
		return fmt.Errorf("at least one jurisdiction is required")
	}
	for i, h := range r.History {
		if h.Status == "" || h.DateEntered == "" {
			return fmt.Errorf("history entry #%d is missing required fields (status and date)", i+1)
		}
	}
	return nil
}

func (r agreementRequest) toAgreement() model.Agreement {
	sourceURL := r.SourceURL
	if sourceURL == nil {
		sourceURL = r.SourceURLAlt
	}
	launchDate := r.LaunchDate
	if launchDate == nil {
		launchDate = r.LaunchDateAlt
	}

	return model.Agreement{
		Title:         strings.TrimSpace(r.Title),
		Summary:       r.Summary,
		Description:   r.Description,
		Status:        r.Status,
		Deadline:      emptyToNil(r.Deadline),
		SourceURL:     emptyToNil(sourceURL),
		LaunchDate:    emptyToNil(launchDate),
		Theme:         emptyToNil(r.Theme),
		Jurisdictions: r.Jurisdictions,
		History:       r.History,
	}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// ListAgreementsHandler returns every agreement.
func ListAgreementsHandler(agreements AgreementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		all, err := agreements.GetAll(ctx)
		if err != nil {
			log.Printf("Error listing agreements: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load agreements"})
		}
		if all == nil {
			all = []model.Agreement{}
		}

		return c.JSON(all)
	}
}

// GetAgreementHandler returns a single agreement by id.
func GetAgreementHandler(agreements AgreementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		a, err := agreements.GetByID(ctx, c.Params("id"))
		if err != nil {
			log.Printf("Error getting agreement: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load agreement"})
		}
		if a == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Agreement not found"})
		}

		return c.JSON(a)
	}
}

// CreateAgreementHandler validates and persists a new agreement.
func CreateAgreementHandler(agreements AgreementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var req agreementRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := req.validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		a := req.toAgreement()
		if err := agreements.Create(ctx, &a); err != nil {
			log.Printf("Error creating agreement: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create agreement"})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Agreement created successfully",
			"data":    a,
		})
	}
}

// UpdateAgreementHandler replaces every stored field of an agreement.
func UpdateAgreementHandler(agreements AgreementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var req agreementRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := req.validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		id := c.Params("id")
		a := req.toAgreement()
		found, err := agreements.Update(ctx, id, &a)
		if err != nil {
			log.Printf("Error updating agreement: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update agreement"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Agreement not found"})
		}
		a.ID = id

		return c.JSON(fiber.Map{
			"message": "Agreement updated successfully",
			"data":    a,
		})
	}
}

// DeleteAgreementHandler removes an agreement by id.
func DeleteAgreementHandler(agreements AgreementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		found, err := agreements.Delete(ctx, c.Params("id"))
		if err != nil {
			log.Printf("Error deleting agreement: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete agreement"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Agreement not found"})
		}

		return c.JSON(fiber.Map{"message": "Agreement deleted successfully"})
	}
}
