package registration

import (
	"vmp-sync/core/logger"
	"vmp-sync/core/soapenv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles the registration webhook.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the registration routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/webhooks/registrations", h.HandleWebhook)
}

// HandleWebhook receives a registration notification and links the account.
// @Summary Registration webhook
// @Description Receive a registration notification and link the volunteer on the platform.
// @Tags registration
// @Accept xml
// @Produce xml
// @Success 200 {string} string "Acknowledgement envelope"
// @Router /webhooks/registrations [post]
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	linked, err := h.service.Collect(c.Context(), c.Body())
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	if err != nil {
		l.Error("Registration webhook failed", zap.Error(err))
		return c.SendString(soapenv.Ack(false))
	}

	l.Info("Registration webhook accepted", zap.Int("linked", linked))
	return c.SendString(soapenv.Ack(true))
}
