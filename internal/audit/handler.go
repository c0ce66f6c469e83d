package audit

import (
	"fmt"

	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entity_type=order&limit=50
// Kafeye ait işlem kayıtları, en yeniden eskiye.
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.AuditLog{}).Where("cafe_id = ?", cafeID)

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}

		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			if _, err := fmt.Sscan(limitStr, &limit); err != nil || limit < 1 || limit > 500 {
				return fiber.NewError(fiber.StatusBadRequest, "limit geçersiz")
			}
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc, id desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		return c.JSON(logs)
	}
}
