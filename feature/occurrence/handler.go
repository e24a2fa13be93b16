package occurrence

import (
	"strings"

	"vmp-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles the HTTP triggers of the occurrence sync passes.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the occurrence trigger routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/sync/occurrences", h.HandleSyncOccurrences)
	app.Get("/dispatch/occurrences", h.HandleDispatchOccurrences)
	app.Get("/unlist", h.HandleUnlist)
}

// HandleSyncOccurrences runs one cache pass against the source index.
// @Summary Sync occurrences
// @Description Reconcile the source index against the staging ledger.
// @Tags occurrence
// @Produce plain
// @Success 200 {string} string "Pass summary"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/occurrences [get]
func (h *Handler) HandleSyncOccurrences(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.CacheOccurrences(c.Context())
	if err != nil {
		l.Error("Occurrence cache pass failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendString(summary)
}

// HandleDispatchOccurrences sends all pending ledger rows to the platform.
// @Summary Dispatch occurrences
// @Description Send every pending staged occurrence to the platform in batches.
// @Tags occurrence
// @Produce plain
// @Success 200 {string} string "Pass summary"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /dispatch/occurrences [get]
func (h *Handler) HandleDispatchOccurrences(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.DispatchOccurrences(c.Context())
	if err != nil {
		l.Error("Occurrence dispatch pass failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendString(summary)
}

// HandleUnlist flips the given occurrences to unlisted visibility.
// @Summary Unlist occurrences
// @Description Unlist one or more occurrences on the platform, comma-separated.
// @Tags occurrence
// @Produce plain
// @Param occurrenceId query string true "Occurrence id(s), comma-separated"
// @Success 200 {string} string "Pass summary"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /unlist [get]
func (h *Handler) HandleUnlist(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var ids []string
	for _, id := range strings.Split(c.Query("occurrenceId"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "occurrenceId is required",
		})
	}

	summary, err := h.service.Unlist(c.Context(), ids)
	if err != nil {
		l.Error("Unlist failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendString(summary)
}
