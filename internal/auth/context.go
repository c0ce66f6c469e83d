package auth

import (
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CafeIDFromCtx - JWT'den kafe id'sini çeker. Tüm entity handler'ları
// sorgularını bu id ile scope'lar; context dışından tenant bilgisi okunmaz.
func CafeIDFromCtx(c *fiber.Ctx) (uint, error) {
	cafeIDVal := c.Locals(CtxCafeIDKey)
	cafeID, ok := cafeIDVal.(uint)
	if !ok || cafeID == 0 {
		return 0, fiber.NewError(fiber.StatusForbidden, "Kafe bilgisi alınamadı")
	}
	return cafeID, nil
}

// CurrentUser - Audit log için kullanıcı id + adını döndürür.
func CurrentUser(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.Name, nil
}
