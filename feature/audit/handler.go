package audit

import (
	"errors"

	"estate-manager/core/logger"
	"estate-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for media audits.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audit")
	group.Get("/media", h.HandleAudit)
	group.Get("/media/*", h.HandleCheck)
	group.Post("/media/purge", h.HandlePurge)
}

// HandleAudit reports orphaned media objects and dangling references.
// @Summary Audit Media
// @Description Compare media referenced by listings with the objects in storage.
// @Tags audit
// @Produce json
// @Success 200 {object} Report "Audit report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audit/media [get]
func (h *Handler) HandleAudit(c *fiber.Ctx) error {
	report, err := h.service.Audit(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Media audit failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleCheck reconciles a single media public id.
// @Summary Check Media
// @Tags audit
// @Produce json
// @Param publicId path string true "Media public id"
// @Success 200 {object} reconcile.ReconcileResult "Result"
// @Failure 404 {object} map[string]string "Unknown public id"
// @Router /audit/media/{publicId} [get]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	result, err := h.service.Check(c.UserContext(), c.Params("*"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !result.DBPresent && !result.StoragePresent {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown public id"})
	}
	return c.JSON(result)
}

// HandlePurge deletes orphaned objects and detaches dangling references.
// @Summary Purge Media
// @Description Requires confirm=true unless dry_run=true.
// @Tags audit
// @Produce json
// @Param confirm query bool false "Confirm destructive actions"
// @Param dry_run query bool false "Plan only"
// @Success 200 {object} Report "Purge report"
// @Failure 400 {object} map[string]string "Not confirmed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audit/media/purge [post]
func (h *Handler) HandlePurge(c *fiber.Ctx) error {
	confirmed := utils.ToBool(c.Query("confirm"))
	dryRun := utils.ToBool(c.Query("dry_run"))

	report, err := h.service.Purge(c.UserContext(), confirmed, dryRun)
	if errors.Is(err, ErrNotConfirmed) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Media purge failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
