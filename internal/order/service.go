package order

import (
	"errors"

	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"
	"cafe-pos-backend/internal/pricing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewItem struct {
	MenuItemID uint   `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes"`
}

// Create - Sipariş oluşturma akışı. Sipariş + kalemleri + masanın occupied'a
// çekilmesi tek transaction'da yapılır; ara adım başarısız olursa hiçbir
// yazma kalıcı olmaz.
func Create(cafeID, tableID uint, items []NewItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Sipariş en az bir kalem içermeli")
	}
	for _, it := range items {
		if it.MenuItemID == 0 || it.Quantity <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Her kalem için menu_item_id ve pozitif quantity zorunlu")
		}
	}

	var ord models.Order

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var t models.Table
		if err := tx.First(&t, "id = ? AND cafe_id = ?", tableID, cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
		}
		if t.Status != models.TableAvailable {
			return fiber.NewError(fiber.StatusBadRequest, "Masa müsait değil")
		}

		// Menü ürünlerini çek; ad ve fiyat sipariş anındaki halleriyle kopyalanır
		lines := make([]pricing.Line, 0, len(items))
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			var m models.MenuItem
			if err := tx.First(&m, "id = ? AND cafe_id = ?", it.MenuItemID, cafeID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Menü ürünü bulunamadı")
			}
			if !m.Available {
				return fiber.NewError(fiber.StatusBadRequest, "Ürün şu anda satışta değil: "+m.Name)
			}
			lines = append(lines, pricing.Line{Price: m.Price, Quantity: it.Quantity})
			orderItems = append(orderItems, models.OrderItem{
				MenuItemID:   m.ID,
				MenuItemName: m.Name,
				Quantity:     it.Quantity,
				Price:        m.Price,
				Notes:        it.Notes,
				Status:       models.ItemPending,
			})
		}

		subtotal, tax, total := pricing.Totals(lines)

		ord = models.Order{
			CafeID:        cafeID,
			TableID:       t.ID,
			TableNumber:   t.Number,
			Status:        models.OrderActive,
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         total,
			PaymentStatus: models.PaymentPending,
			Items:         orderItems,
		}
		if err := tx.Create(&ord).Error; err != nil {
			return err
		}

		// Masayı işgal et ve aktif siparişe bağla
		t.Status = models.TableOccupied
		t.CurrentOrderID = &ord.ID
		return tx.Save(&t).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Sipariş oluşturulamadı")
	}

	return &ord, nil
}

// Complete - Siparişi tamamlar: sipariş completed + billed olur, adisyon
// kesilir, masa boşa çıkar. Üç yazma tek transaction'dadır; yarım kalmış
// durum (tamamlanmış ama adisyonsuz sipariş) oluşamaz.
func Complete(cafeID, orderID uint) (*models.Bill, error) {
	var bill models.Bill

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var ord models.Order
		if err := tx.Preload("Items").First(&ord, "id = ? AND cafe_id = ?", orderID, cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		if ord.Status != models.OrderActive {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece aktif siparişler tamamlanabilir")
		}

		// Save kalemleri de upsert edeceği için alan bazlı güncelleme
		if err := tx.Model(&models.Order{}).
			Where("id = ?", ord.ID).
			Updates(map[string]interface{}{
				"status":         models.OrderCompleted,
				"payment_status": models.PaymentBilled,
			}).Error; err != nil {
			return err
		}
		ord.Status = models.OrderCompleted
		ord.PaymentStatus = models.PaymentBilled

		// Kalemlerin o anki hali adisyona kopyalanır
		billItems := make([]models.BillItem, 0, len(ord.Items))
		for _, it := range ord.Items {
			billItems = append(billItems, models.BillItem{
				MenuItemName: it.MenuItemName,
				Quantity:     it.Quantity,
				Price:        it.Price,
			})
		}

		bill = models.Bill{
			CafeID:        ord.CafeID,
			OrderID:       ord.ID,
			ReceiptNo:     uuid.NewString(),
			TableNumber:   ord.TableNumber,
			Subtotal:      ord.Subtotal,
			Tax:           ord.Tax,
			Total:         ord.Total,
			PaymentStatus: models.PaymentPending,
			Items:         billItems,
		}
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}

		return releaseTable(tx, &ord)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Sipariş tamamlanamadı")
	}

	return &bill, nil
}

// Cancel - Aktif siparişi iptal eder, servise çıkmamış kalemleri iptal
// işaretler ve masayı boşa çıkarır.
func Cancel(cafeID, orderID uint) (*models.Order, error) {
	var ord models.Order

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&ord, "id = ? AND cafe_id = ?", orderID, cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		if ord.Status != models.OrderActive {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece aktif siparişler iptal edilebilir")
		}

		if err := tx.Model(&models.Order{}).
			Where("id = ?", ord.ID).
			Update("status", models.OrderCancelled).Error; err != nil {
			return err
		}
		ord.Status = models.OrderCancelled

		if err := tx.Model(&models.OrderItem{}).
			Where("order_id = ? AND status <> ?", ord.ID, models.ItemServed).
			Update("status", models.ItemCancelled).Error; err != nil {
			return err
		}

		return releaseTable(tx, &ord)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Sipariş iptal edilemedi")
	}

	return &ord, nil
}

// releaseTable - Siparişin masasını available'a döndürür ve aktif sipariş
// bağını temizler. Masa başka bir siparişe geçmişse dokunulmaz.
func releaseTable(tx *gorm.DB, ord *models.Order) error {
	var t models.Table
	if err := tx.First(&t, "id = ?", ord.TableID).Error; err != nil {
		return err
	}
	if t.CurrentOrderID == nil || *t.CurrentOrderID != ord.ID {
		return nil
	}
	t.Status = models.TableAvailable
	t.CurrentOrderID = nil
	return tx.Save(&t).Error
}
