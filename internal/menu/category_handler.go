package menu

import (
	"strings"

	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GET /api/categories (auth olan herkes)
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var cats []models.Category
		if err := database.DB.Where("cafe_id = ?", cafeID).Order("name asc").Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}

		res := make([]CategoryResponse, 0, len(cats))
		for _, cat := range cats {
			res = append(res, CategoryResponse{
				ID:          cat.ID,
				Name:        cat.Name,
				Description: cat.Description,
			})
		}
		return c.JSON(res)
	}
}

// POST /api/admin/categories (sadece admin)
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name zorunlu")
		}

		var existing models.Category
		if err := database.DB.Where("cafe_id = ? AND name = ?", cafeID, body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu isimde bir kategori zaten var")
		}

		cat := models.Category{
			CafeID:      cafeID,
			Name:        body.Name,
			Description: strings.TrimSpace(body.Description),
		}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(CategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
		})
	}
}

// PUT /api/admin/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var cat models.Category
		if err := database.DB.First(&cat, "id = ? AND cafe_id = ?", c.Params("id"), cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			cat.Name = name
		}
		if body.Description != nil {
			cat.Description = strings.TrimSpace(*body.Description)
		}

		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori güncellenemedi")
		}

		return c.JSON(CategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
		})
	}
}

// DELETE /api/admin/categories/:id
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var cat models.Category
		if err := database.DB.First(&cat, "id = ? AND cafe_id = ?", c.Params("id"), cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		// Kategoriye bağlı ürün varsa silme
		var itemCount int64
		database.DB.Model(&models.MenuItem{}).Where("category_id = ?", cat.ID).Count(&itemCount)
		if itemCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kategoriye bağlı ürünler var, önce onları taşı veya sil")
		}

		if err := database.DB.Delete(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
