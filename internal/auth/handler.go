package auth

import (
	"strings"

	"cafe-pos-backend/internal/config"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"
	"cafe-pos-backend/internal/session"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterCafeRequest struct {
	CafeName string `json:"cafe_name"`
	Address  string `json:"address"`
	Logo     string `json:"logo"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userJSON(user *models.User) fiber.Map {
	return fiber.Map{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
		"cafe_id": user.CafeID,
	}
}

func cafeJSON(cafe *models.Cafe) fiber.Map {
	return fiber.Map{
		"id":      cafe.ID,
		"name":    cafe.Name,
		"address": cafe.Address,
		"logo":    cafe.Logo,
	}
}

// POST /api/auth/register-cafe
// Kafe kaydı: kafe + admin kullanıcı tek transaction'da oluşturulur.
func RegisterCafeHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterCafeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.CafeName = strings.TrimSpace(body.CafeName)
		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.CafeName == "" || body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kafe adı, isim, email ve şifre zorunlu")
		}

		var existing models.User
		if err := database.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu email zaten kayıtlı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		cafe := models.Cafe{
			Name:    body.CafeName,
			Address: strings.TrimSpace(body.Address),
			Logo:    strings.TrimSpace(body.Logo),
		}
		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&cafe).Error; err != nil {
				return err
			}
			user.CafeID = cafe.ID
			return tx.Create(&user).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kafe oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"cafe": cafeJSON(&cafe),
			"user": userJSON(&user),
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		var cafe models.Cafe
		if err := database.DB.First(&cafe, "id = ?", user.CafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kafe bilgisi yüklenemedi")
		}

		// Kullanıcı + kafe kaydını cache'le (eski localStorage davranışının karşılığı).
		// Cache yazılamazsa login engellenmez.
		_ = session.Save(c.Context(), &session.Record{
			UserID:   user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			CafeID:   cafe.ID,
			CafeName: cafe.Name,
			CafeAddr: cafe.Address,
			CafeLogo: cafe.Logo,
		})

		return c.JSON(fiber.Map{
			"token": token,
			"user":  userJSON(&user),
			"cafe":  cafeJSON(&cafe),
		})
	}
}

// POST /api/auth/logout
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)
		if userID, ok := userIDVal.(uint); ok {
			_ = session.Delete(c.Context(), userID)
		}
		return c.JSON(fiber.Map{"message": "Çıkış yapıldı"})
	}
}

// GET /api/auth/me
// Önce cache'e bakar, yoksa DB'den okuyup cache'i tazeler.
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)
		userID, ok := userIDVal.(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bilgisi alınamadı")
		}

		if rec, err := session.Get(c.Context(), userID); err == nil && rec != nil {
			return c.JSON(fiber.Map{
				"user": fiber.Map{
					"id":      rec.UserID,
					"name":    rec.Name,
					"email":   rec.Email,
					"role":    rec.Role,
					"cafe_id": rec.CafeID,
				},
				"cafe": fiber.Map{
					"id":      rec.CafeID,
					"name":    rec.CafeName,
					"address": rec.CafeAddr,
					"logo":    rec.CafeLogo,
				},
			})
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		var cafe models.Cafe
		if err := database.DB.First(&cafe, "id = ?", user.CafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kafe bilgisi yüklenemedi")
		}

		_ = session.Save(c.Context(), &session.Record{
			UserID:   user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			CafeID:   cafe.ID,
			CafeName: cafe.Name,
			CafeAddr: cafe.Address,
			CafeLogo: cafe.Logo,
		})

		return c.JSON(fiber.Map{
			"user": userJSON(&user),
			"cafe": cafeJSON(&cafe),
		})
	}
}

// POST /api/admin/staff (sadece admin)
// Admin kendi kafesine personel hesabı açar.
func CreateStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateStaffRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, email ve şifre zorunlu")
		}

		var existing models.User
		if err := database.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu email zaten kayıtlı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			CafeID:       cafeID,
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleStaff,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(userJSON(&user))
	}
}
