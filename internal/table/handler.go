package table

import (
	"fmt"

	"cafe-pos-backend/internal/audit"
	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TableResponse struct {
	ID             uint               `json:"id"`
	Number         int                `json:"number"`
	Capacity       int                `json:"capacity"`
	Status         models.TableStatus `json:"status"`
	CurrentOrderID *uint              `json:"current_order_id"`
}

type CreateTableRequest struct {
	Number   int `json:"number"`
	Capacity int `json:"capacity"`
}

type UpdateTableRequest struct {
	Number   *int                `json:"number"`
	Capacity *int                `json:"capacity"`
	Status   *models.TableStatus `json:"status"`
}

func toResponse(t *models.Table) TableResponse {
	return TableResponse{
		ID:             t.ID,
		Number:         t.Number,
		Capacity:       t.Capacity,
		Status:         t.Status,
		CurrentOrderID: t.CurrentOrderID,
	}
}

// Admin elle sadece bu durumlara çekebilir; occupied yalnızca sipariş akışından gelir.
func isAdminSettableStatus(s models.TableStatus) bool {
	switch s {
	case models.TableAvailable, models.TableReserved, models.TableInactive:
		return true
	}
	return false
}

// GET /api/tables?status=available (auth olan herkes)
func ListTablesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Table{}).Where("cafe_id = ?", cafeID)

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var tables []models.Table
		if err := dbq.Order("number asc").Find(&tables).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Masalar listelenemedi")
		}

		res := make([]TableResponse, 0, len(tables))
		for _, t := range tables {
			res = append(res, toResponse(&t))
		}
		return c.JSON(res)
	}
}

// GET /api/tables/:id
func GetTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var t models.Table
		if err := database.DB.First(&t, "id = ? AND cafe_id = ?", c.Params("id"), cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
		}

		return c.JSON(toResponse(&t))
	}
}

// POST /api/admin/tables (sadece admin)
func CreateTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Number <= 0 || body.Capacity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Masa numarası ve kapasite pozitif olmalı")
		}

		// Aynı numarada masa var mı?
		var existing models.Table
		if err := database.DB.Where("cafe_id = ? AND number = ?", cafeID, body.Number).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu masa numarası zaten kullanılıyor")
		}

		t := models.Table{
			CafeID:   cafeID,
			Number:   body.Number,
			Capacity: body.Capacity,
			Status:   models.TableAvailable,
		}

		if err := database.DB.Create(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Masa oluşturulamadı")
		}

		if userID, userName, uerr := auth.CurrentUser(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				CafeID:      cafeID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "table",
				EntityID:    t.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Masa eklendi: %d (%d kişilik)", t.Number, t.Capacity),
				After:       toResponse(&t),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&t))
	}
}

// PUT /api/admin/tables/:id
func UpdateTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var t models.Table
		if err := database.DB.First(&t, "id = ? AND cafe_id = ?", c.Params("id"), cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
		}

		var body UpdateTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		before := toResponse(&t)

		if body.Number != nil {
			if *body.Number <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Masa numarası pozitif olmalı")
			}
			t.Number = *body.Number
		}
		if body.Capacity != nil {
			if *body.Capacity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Kapasite pozitif olmalı")
			}
			t.Capacity = *body.Capacity
		}
		if body.Status != nil {
			if !isAdminSettableStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Durum available, reserved veya inactive olabilir")
			}
			if t.Status == models.TableOccupied {
				return fiber.NewError(fiber.StatusBadRequest, "Aktif siparişi olan masanın durumu elle değiştirilemez")
			}
			t.Status = *body.Status
		}

		if err := database.DB.Save(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Masa güncellenemedi")
		}

		if userID, userName, uerr := auth.CurrentUser(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				CafeID:      cafeID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "table",
				EntityID:    t.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Masa güncellendi: %d", t.Number),
				Before:      before,
				After:       toResponse(&t),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toResponse(&t))
	}
}

// DELETE /api/admin/tables/:id
func DeleteTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var t models.Table
		if err := database.DB.First(&t, "id = ? AND cafe_id = ?", c.Params("id"), cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
		}

		if t.Status == models.TableOccupied {
			return fiber.NewError(fiber.StatusBadRequest, "Aktif siparişi olan masa silinemez")
		}

		if err := database.DB.Delete(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Masa silinemedi")
		}

		if userID, userName, uerr := auth.CurrentUser(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				CafeID:      cafeID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "table",
				EntityID:    t.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Masa silindi: %d", t.Number),
				Before:      toResponse(&t),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
