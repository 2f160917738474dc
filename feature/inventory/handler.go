package inventory

import (
	"errors"
	"strconv"

	"kawa-inventory/core/lock"
	"kawa-inventory/core/logger"
	"kawa-inventory/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventory.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/:userId", h.HandleGetInventory)
	group.Post("/:userId/sync", h.HandleSync)
}

// HandleSync triggers an inventory sync for one user.
// @Summary Sync Inventory
// @Description Replace the user's stored inventory with the current FIO snapshot. A 200 response may still carry per-item errors; check success.
// @Tags inventory
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} reconcile.Outcome "Sync Outcome"
// @Failure 400 {object} map[string]string "Invalid User ID"
// @Failure 404 {object} map[string]string "User Not Found"
// @Failure 409 {object} map[string]string "Sync Already Running"
// @Failure 422 {object} map[string]string "FIO Account Not Linked"
// @Failure 502 {object} SyncFailure "Sync Aborted"
// @Router /inventory/{userId}/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	userID, ok := parseUserID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	l := logger.WithRayID(h.service.logger, c)

	out, err := h.service.SyncUser(c.UserContext(), userID)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			l.Error("Inventory sync request failed", zap.Uint("user_id", userID), zap.Error(err))
		}
		if out != nil {
			return c.Status(status).JSON(SyncFailure{Error: err.Error(), Outcome: out})
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(out)
}

// HandleGetInventory returns the stored inventory of one user.
// @Summary Get Inventory
// @Description Get the user's storages and items as written by the last sync.
// @Tags inventory
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} InventoryView "Inventory"
// @Failure 400 {object} map[string]string "Invalid User ID"
// @Failure 404 {object} map[string]string "User Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/{userId} [get]
func (h *Handler) HandleGetInventory(c *fiber.Ctx) error {
	userID, ok := parseUserID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	view, err := h.service.Inventory(c.UserContext(), userID)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			logger.WithRayID(h.service.logger, c).Error("Inventory read failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(view)
}

// SyncFailure is returned when a run aborts before or while replacing storages.
type SyncFailure struct {
	Error   string             `json:"error"`
	Outcome *reconcile.Outcome `json:"outcome"`
}

func parseUserID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrNotLinked):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, lock.ErrRunInProgress):
		return fiber.StatusConflict
	case errors.Is(err, reconcile.ErrFetch):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
