package servicehours

import (
	"vmp-sync/core/logger"
	"vmp-sync/core/soapenv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles the service-hours webhook and dispatch trigger.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the service-hours routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/webhooks/servicehours", h.HandleWebhook)
	app.Get("/dispatch/servicehours", h.HandleDispatch)
}

// HandleWebhook receives the source system's attendance notification
// envelope and stages verified rows.
// @Summary Service-hours webhook
// @Description Receive an attendance notification envelope and stage verified hours.
// @Tags servicehours
// @Accept xml
// @Produce xml
// @Success 200 {string} string "Acknowledgement envelope"
// @Router /webhooks/servicehours [post]
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	collected, err := h.service.Collect(c.Context(), c.Body())
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	if err != nil {
		// The sender retries on a negative acknowledgement; the envelope is
		// always 200 either way.
		l.Error("Service-hours webhook failed", zap.Error(err))
		return c.SendString(soapenv.Ack(false))
	}

	l.Info("Service-hours webhook accepted", zap.Int("collected", collected))
	return c.SendString(soapenv.Ack(true))
}

// HandleDispatch sends all staged service hours to the platform.
// @Summary Dispatch service hours
// @Description Send staged verified hours to the platform in batches.
// @Tags servicehours
// @Produce plain
// @Success 200 {string} string "Pass summary"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /dispatch/servicehours [get]
func (h *Handler) HandleDispatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Dispatch(c.Context())
	if err != nil {
		l.Error("Service-hours dispatch pass failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendString(summary)
}
