package order

import (
	"fmt"
	"time"

	"cafe-pos-backend/internal/audit"
	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateOrderRequest struct {
	TableID uint      `json:"table_id"`
	Items   []NewItem `json:"items"`
}

type UpdateItemStatusRequest struct {
	Status models.OrderItemStatus `json:"status"`
}

type OrderItemResponse struct {
	ID           uint                   `json:"id"`
	MenuItemID   uint                   `json:"menu_item_id"`
	MenuItemName string                 `json:"menu_item_name"`
	Quantity     int                    `json:"quantity"`
	Price        float64                `json:"price"`
	Notes        string                 `json:"notes"`
	Status       models.OrderItemStatus `json:"status"`
}

type OrderResponse struct {
	ID            uint                  `json:"id"`
	TableID       uint                  `json:"table_id"`
	TableNumber   int                   `json:"table_number"`
	Status        models.OrderStatus    `json:"status"`
	Subtotal      float64               `json:"subtotal"`
	Tax           float64               `json:"tax"`
	Total         float64               `json:"total"`
	PaymentStatus models.PaymentStatus  `json:"payment_status"`
	PaymentMethod *models.PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Items         []OrderItemResponse   `json:"items"`
}

func toResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:           it.ID,
			MenuItemID:   it.MenuItemID,
			MenuItemName: it.MenuItemName,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Notes:        it.Notes,
			Status:       it.Status,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		TableID:       o.TableID,
		TableNumber:   o.TableNumber,
		Status:        o.Status,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Total:         o.Total,
		PaymentStatus: o.PaymentStatus,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         items,
	}
}

// POST /api/orders
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.TableID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "table_id zorunlu")
		}

		ord, err := Create(cafeID, body.TableID, body.Items)
		if err != nil {
			return err
		}

		if userID, userName, uerr := auth.CurrentUser(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				CafeID:      cafeID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "order",
				EntityID:    ord.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Sipariş açıldı: masa %d, %.2f", ord.TableNumber, ord.Total),
				After:       toResponse(ord),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(ord))
	}
}

// GET /api/orders?status=active
// En yeni sipariş en üstte.
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Order{}).
			Preload("Items").
			Where("cafe_id = ?", cafeID)

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var orders []models.Order
		if err := dbq.Order("created_at desc, id desc").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		res := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			res = append(res, toResponse(&o))
		}
		return c.JSON(res)
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var o models.Order
		if err := database.DB.Preload("Items").
			First(&o, "id = ? AND cafe_id = ?", c.Params("id"), cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		return c.JSON(toResponse(&o))
	}
}

// POST /api/orders/:id/complete
// Siparişi kapatır ve kesilen adisyonu döndürür.
func CompleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var orderID uint
		if _, err := fmt.Sscan(c.Params("id"), &orderID); err != nil || orderID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş id geçersiz")
		}

		bill, err := Complete(cafeID, orderID)
		if err != nil {
			return err
		}

		if userID, userName, uerr := auth.CurrentUser(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				CafeID:      cafeID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "order",
				EntityID:    orderID,
				Action:      models.AuditActionStatus,
				Description: fmt.Sprintf("Sipariş tamamlandı, adisyon kesildi: %s", bill.ReceiptNo),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{
			"message": "Sipariş tamamlandı",
			"bill_id": bill.ID,
		})
	}
}

// POST /api/orders/:id/cancel
func CancelOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var orderID uint
		if _, err := fmt.Sscan(c.Params("id"), &orderID); err != nil || orderID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş id geçersiz")
		}

		ord, err := Cancel(cafeID, orderID)
		if err != nil {
			return err
		}

		if userID, userName, uerr := auth.CurrentUser(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				CafeID:      cafeID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "order",
				EntityID:    ord.ID,
				Action:      models.AuditActionStatus,
				Description: fmt.Sprintf("Sipariş iptal edildi: masa %d", ord.TableNumber),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{"message": "Sipariş iptal edildi"})
	}
}

// PATCH /api/order-items/:id/status
// Mutfak akışı: pending → preparing → ready → served (veya cancelled).
func UpdateOrderItemStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var body UpdateItemStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		switch body.Status {
		case models.ItemPending, models.ItemPreparing, models.ItemReady, models.ItemServed, models.ItemCancelled:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kalem durumu")
		}

		var it models.OrderItem
		if err := database.DB.First(&it, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş kalemi bulunamadı")
		}

		var ord models.Order
		if err := database.DB.First(&ord, "id = ? AND cafe_id = ?", it.OrderID, cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş kalemi bulunamadı")
		}
		if ord.Status != models.OrderActive {
			return fiber.NewError(fiber.StatusBadRequest, "Kapanmış siparişin kalemleri değiştirilemez")
		}

		it.Status = body.Status
		if err := database.DB.Save(&it).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem durumu güncellenemedi")
		}

		return c.JSON(OrderItemResponse{
			ID:           it.ID,
			MenuItemID:   it.MenuItemID,
			MenuItemName: it.MenuItemName,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Notes:        it.Notes,
			Status:       it.Status,
		})
	}
}
