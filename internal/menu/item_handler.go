package menu

import (
	"fmt"
	"strings"

	"cafe-pos-backend/internal/audit"
	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MenuItemResponse struct {
	ID          uint    `json:"id"`
	CategoryID  uint    `json:"category_id"`
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Available   bool    `json:"available"`
}

type CreateMenuItemRequest struct {
	CategoryID  uint    `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

type UpdateMenuItemRequest struct {
	CategoryID  *uint    `json:"category_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Available   *bool    `json:"available"`
}

func itemToResponse(m *models.MenuItem, categoryName string) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Category:    categoryName,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Image:       m.Image,
		Available:   m.Available,
	}
}

// GET /api/menu-items?category_id=1&available=true&q=pizza
func ListMenuItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.MenuItem{}).
			Preload("Category").
			Where("cafe_id = ?", cafeID)

		if catStr := c.Query("category_id"); catStr != "" {
			var cid uint
			if _, err := fmt.Sscan(catStr, &cid); err != nil || cid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "category_id geçersiz")
			}
			dbq = dbq.Where("category_id = ?", cid)
		}

		if availStr := c.Query("available"); availStr != "" {
			dbq = dbq.Where("available = ?", availStr == "true")
		}

		// İsimde alt dize araması
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			dbq = dbq.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}

		var items []models.MenuItem
		if err := dbq.Order("name asc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]MenuItemResponse, 0, len(items))
		for _, m := range items {
			res = append(res, itemToResponse(&m, m.Category.Name))
		}
		return c.JSON(res)
	}
}

// GET /api/menu-items/:id
func GetMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var m models.MenuItem
		if err := database.DB.Preload("Category").
			First(&m, "id = ? AND cafe_id = ?", c.Params("id"), cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		return c.JSON(itemToResponse(&m, m.Category.Name))
	}
}

// POST /api/admin/menu-items (sadece admin)
func CreateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.CategoryID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Name ve category_id zorunlu")
		}
		if body.Price <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat pozitif olmalı")
		}

		// Kategori bu kafeye mi ait?
		var cat models.Category
		if err := database.DB.First(&cat, "id = ? AND cafe_id = ?", body.CategoryID, cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori bulunamadı")
		}

		m := models.MenuItem{
			CafeID:      cafeID,
			CategoryID:  body.CategoryID,
			Name:        body.Name,
			Description: strings.TrimSpace(body.Description),
			Price:       body.Price,
			Image:       strings.TrimSpace(body.Image),
			Available:   true,
		}

		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		if userID, userName, uerr := auth.CurrentUser(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				CafeID:      cafeID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "menu_item",
				EntityID:    m.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Ürün eklendi: %s - %.2f", m.Name, m.Price),
				After:       itemToResponse(&m, cat.Name),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(itemToResponse(&m, cat.Name))
	}
}

// PUT /api/admin/menu-items/:id
func UpdateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var m models.MenuItem
		if err := database.DB.Preload("Category").
			First(&m, "id = ? AND cafe_id = ?", c.Params("id"), cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		before := itemToResponse(&m, m.Category.Name)
		categoryName := m.Category.Name

		if body.CategoryID != nil {
			var cat models.Category
			if err := database.DB.First(&cat, "id = ? AND cafe_id = ?", *body.CategoryID, cafeID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Kategori bulunamadı")
			}
			m.CategoryID = *body.CategoryID
			categoryName = cat.Name
		}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			m.Name = name
		}
		if body.Description != nil {
			m.Description = strings.TrimSpace(*body.Description)
		}
		if body.Price != nil {
			if *body.Price <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Fiyat pozitif olmalı")
			}
			m.Price = *body.Price
		}
		if body.Image != nil {
			m.Image = strings.TrimSpace(*body.Image)
		}
		if body.Available != nil {
			m.Available = *body.Available
		}

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		if userID, userName, uerr := auth.CurrentUser(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				CafeID:      cafeID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "menu_item",
				EntityID:    m.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Ürün güncellendi: %s", m.Name),
				Before:      before,
				After:       itemToResponse(&m, categoryName),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(itemToResponse(&m, categoryName))
	}
}

// DELETE /api/admin/menu-items/:id
func DeleteMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var m models.MenuItem
		if err := database.DB.First(&m, "id = ? AND cafe_id = ?", c.Params("id"), cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		if err := database.DB.Delete(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		if userID, userName, uerr := auth.CurrentUser(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				CafeID:      cafeID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "menu_item",
				EntityID:    m.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Ürün silindi: %s", m.Name),
				Before:      itemToResponse(&m, ""),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
