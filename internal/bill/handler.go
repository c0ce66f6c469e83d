package bill

import (
	"errors"
	"fmt"
	"time"

	"cafe-pos-backend/internal/audit"
	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PayBillRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

type BillItemResponse struct {
	MenuItemName string  `json:"menu_item_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

type BillResponse struct {
	ID            uint                  `json:"id"`
	OrderID       uint                  `json:"order_id"`
	ReceiptNo     string                `json:"receipt_no"`
	TableNumber   int                   `json:"table_number"`
	Subtotal      float64               `json:"subtotal"`
	Tax           float64               `json:"tax"`
	Total         float64               `json:"total"`
	PaymentStatus models.PaymentStatus  `json:"payment_status"`
	PaymentMethod *models.PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time             `json:"created_at"`
	PaidAt        *time.Time            `json:"paid_at"`
	Items         []BillItemResponse    `json:"items"`
}

func toResponse(b *models.Bill) BillResponse {
	items := make([]BillItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, BillItemResponse{
			MenuItemName: it.MenuItemName,
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}
	return BillResponse{
		ID:            b.ID,
		OrderID:       b.OrderID,
		ReceiptNo:     b.ReceiptNo,
		TableNumber:   b.TableNumber,
		Subtotal:      b.Subtotal,
		Tax:           b.Tax,
		Total:         b.Total,
		PaymentStatus: b.PaymentStatus,
		PaymentMethod: b.PaymentMethod,
		CreatedAt:     b.CreatedAt,
		PaidAt:        b.PaidAt,
		Items:         items,
	}
}

// GET /api/bills?payment_status=paid
// En yeni adisyon en üstte.
func ListBillsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Bill{}).
			Preload("Items").
			Where("cafe_id = ?", cafeID)

		if ps := c.Query("payment_status"); ps != "" {
			dbq = dbq.Where("payment_status = ?", ps)
		}

		var bills []models.Bill
		if err := dbq.Order("created_at desc, id desc").Find(&bills).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Adisyonlar listelenemedi")
		}

		res := make([]BillResponse, 0, len(bills))
		for _, b := range bills {
			res = append(res, toResponse(&b))
		}
		return c.JSON(res)
	}
}

// GET /api/bills/:id
func GetBillHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var b models.Bill
		if err := database.DB.Preload("Items").
			First(&b, "id = ? AND cafe_id = ?", c.Params("id"), cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Adisyon bulunamadı")
		}

		return c.JSON(toResponse(&b))
	}
}

// Pay - Adisyonu ödendi işaretler. Idempotent: zaten ödenmiş adisyon için
// tekrar çağrı mevcut kaydı değiştirmeden döndürür (ilk paid_at korunur).
func Pay(cafeID, billID uint, method models.PaymentMethod) (*models.Bill, error) {
	var b models.Bill

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&b, "id = ? AND cafe_id = ?", billID, cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Adisyon bulunamadı")
		}

		if b.PaymentStatus == models.PaymentPaid {
			return nil // Zaten ödenmiş; dokunma
		}

		// UTC: gün bazlı raporlamada ödeme hangi güne düştüyse orada kalsın
		now := time.Now().UTC()
		if err := tx.Model(&models.Bill{}).
			Where("id = ?", b.ID).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentPaid,
				"payment_method": method,
				"paid_at":        now,
			}).Error; err != nil {
			return err
		}
		b.PaymentStatus = models.PaymentPaid
		b.PaymentMethod = &method
		b.PaidAt = &now

		// Siparişin ödeme durumunu da senkron tut
		return tx.Model(&models.Order{}).
			Where("id = ?", b.OrderID).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentPaid,
				"payment_method": method,
			}).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Ödeme kaydedilemedi")
	}

	return &b, nil
}

// POST /api/bills/:id/pay
func PayBillHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var body PayBillRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		switch body.PaymentMethod {
		case models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodUPI:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Ödeme yöntemi cash, card veya upi olmalı")
		}

		var billID uint
		if _, err := fmt.Sscan(c.Params("id"), &billID); err != nil || billID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Adisyon id geçersiz")
		}

		alreadyPaid := false
		{
			var existing models.Bill
			if err := database.DB.Select("payment_status").
				First(&existing, "id = ? AND cafe_id = ?", billID, cafeID).Error; err == nil {
				alreadyPaid = existing.PaymentStatus == models.PaymentPaid
			}
		}

		b, err := Pay(cafeID, billID, body.PaymentMethod)
		if err != nil {
			return err
		}

		// Tekrarlanan çağrıda audit kaydı da yazılmaz
		if !alreadyPaid {
			if userID, userName, uerr := auth.CurrentUser(c); uerr == nil {
				if logErr := audit.WriteLog(audit.LogOptions{
					CafeID:      cafeID,
					UserID:      userID,
					UserName:    userName,
					EntityType:  "bill",
					EntityID:    b.ID,
					Action:      models.AuditActionStatus,
					Description: fmt.Sprintf("Adisyon ödendi: %s - %.2f (%s)", b.ReceiptNo, b.Total, body.PaymentMethod),
				}); logErr != nil {
					fmt.Printf("Audit log yazılamadı: %v\n", logErr)
				}
			}
		}

		return c.JSON(toResponse(b))
	}
}
