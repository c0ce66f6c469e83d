package seed

import (
	"errors"

	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// POST /api/admin/seed (sadece admin)
// Yeni ortam için örnek veri yükler: masalar, kategoriler, menü, bir aktif
// sipariş ve bir kesilmiş adisyon. Kafede masa varsa çalışmaz.
func SeedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		var tableCount int64
		database.DB.Model(&models.Table{}).Where("cafe_id = ?", cafeID).Count(&tableCount)
		if tableCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kafede zaten masa tanımlı, seed çalıştırılamaz")
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			return insertFixtures(tx, cafeID)
		}); err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Örnek veri yüklenemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Örnek veri yüklendi"})
	}
}

func insertFixtures(tx *gorm.DB, cafeID uint) error {
	// Masalar
	tables := []models.Table{
		{CafeID: cafeID, Number: 1, Capacity: 4, Status: models.TableAvailable},
		{CafeID: cafeID, Number: 2, Capacity: 2, Status: models.TableAvailable}, // aktif sipariş aşağıda bağlanır
		{CafeID: cafeID, Number: 3, Capacity: 6, Status: models.TableReserved},
		{CafeID: cafeID, Number: 4, Capacity: 4, Status: models.TableAvailable},
		{CafeID: cafeID, Number: 5, Capacity: 2, Status: models.TableAvailable},
		{CafeID: cafeID, Number: 6, Capacity: 8, Status: models.TableInactive},
		{CafeID: cafeID, Number: 7, Capacity: 4, Status: models.TableAvailable},
		{CafeID: cafeID, Number: 8, Capacity: 2, Status: models.TableAvailable},
	}
	if err := tx.Create(&tables).Error; err != nil {
		return err
	}

	// Kategoriler
	categories := []models.Category{
		{CafeID: cafeID, Name: "Appetizers", Description: "Starters and small plates"},
		{CafeID: cafeID, Name: "Main Course", Description: "Hearty entrées and mains"},
		{CafeID: cafeID, Name: "Desserts", Description: "Sweet treats to finish your meal"},
		{CafeID: cafeID, Name: "Beverages", Description: "Refreshing drinks"},
	}
	if err := tx.Create(&categories).Error; err != nil {
		return err
	}

	// Menü
	items := []models.MenuItem{
		{CafeID: cafeID, CategoryID: categories[0].ID, Name: "Garlic Bread", Description: "Toasted bread with garlic butter", Price: 5.99, Available: true},
		{CafeID: cafeID, CategoryID: categories[0].ID, Name: "Buffalo Wings", Description: "Spicy chicken wings with blue cheese dip", Price: 9.99, Available: true},
		{CafeID: cafeID, CategoryID: categories[0].ID, Name: "Caesar Salad", Description: "Classic salad with romaine lettuce and croutons", Price: 7.99, Available: true},
		{CafeID: cafeID, CategoryID: categories[1].ID, Name: "Margherita Pizza", Description: "Fresh tomato, mozzarella, and basil", Price: 14.99, Available: true},
		{CafeID: cafeID, CategoryID: categories[1].ID, Name: "Spaghetti Carbonara", Description: "Pasta with eggs, cheese, pancetta, and pepper", Price: 12.99, Available: true},
		{CafeID: cafeID, CategoryID: categories[1].ID, Name: "Grilled Salmon", Description: "With lemon butter sauce and seasonal vegetables", Price: 18.99, Available: true},
		{CafeID: cafeID, CategoryID: categories[2].ID, Name: "Chocolate Lava Cake", Description: "Warm chocolate cake with a molten center", Price: 6.99, Available: true},
		{CafeID: cafeID, CategoryID: categories[2].ID, Name: "Tiramisu", Description: "Classic Italian dessert with layers of coffee-soaked ladyfingers", Price: 5.99, Available: true},
		{CafeID: cafeID, CategoryID: categories[3].ID, Name: "Soft Drinks", Description: "Selection of sodas", Price: 2.99, Available: true},
		{CafeID: cafeID, CategoryID: categories[3].ID, Name: "House Wine", Description: "Red or white, by the glass", Price: 8.99, Available: true},
	}
	if err := tx.Create(&items).Error; err != nil {
		return err
	}

	// Masa 2'de aktif bir sipariş
	activeOrder := models.Order{
		CafeID:        cafeID,
		TableID:       tables[1].ID,
		TableNumber:   tables[1].Number,
		Status:        models.OrderActive,
		Subtotal:      37.95,
		Tax:           3.80,
		Total:         41.75,
		PaymentStatus: models.PaymentPending,
		Items: []models.OrderItem{
			{MenuItemID: items[0].ID, MenuItemName: "Garlic Bread", Quantity: 1, Price: 5.99, Status: models.ItemServed},
			{MenuItemID: items[4].ID, MenuItemName: "Spaghetti Carbonara", Quantity: 2, Price: 12.99, Status: models.ItemServed},
			{MenuItemID: items[8].ID, MenuItemName: "Soft Drinks", Quantity: 2, Price: 2.99, Status: models.ItemServed},
		},
	}
	if err := tx.Create(&activeOrder).Error; err != nil {
		return err
	}
	tables[1].Status = models.TableOccupied
	tables[1].CurrentOrderID = &activeOrder.ID
	if err := tx.Save(&tables[1]).Error; err != nil {
		return err
	}

	// Masa 5'te tamamlanmış bir sipariş + kesilmiş adisyon
	completedOrder := models.Order{
		CafeID:        cafeID,
		TableID:       tables[4].ID,
		TableNumber:   tables[4].Number,
		Status:        models.OrderCompleted,
		Subtotal:      46.96,
		Tax:           4.70,
		Total:         51.66,
		PaymentStatus: models.PaymentBilled,
		Items: []models.OrderItem{
			{MenuItemID: items[1].ID, MenuItemName: "Buffalo Wings", Quantity: 1, Price: 9.99, Status: models.ItemServed},
			{MenuItemID: items[5].ID, MenuItemName: "Grilled Salmon", Quantity: 1, Price: 18.99, Status: models.ItemServed},
			{MenuItemID: items[9].ID, MenuItemName: "House Wine", Quantity: 2, Price: 8.99, Status: models.ItemServed},
		},
	}
	if err := tx.Create(&completedOrder).Error; err != nil {
		return err
	}

	bill := models.Bill{
		CafeID:        cafeID,
		OrderID:       completedOrder.ID,
		ReceiptNo:     uuid.NewString(),
		TableNumber:   completedOrder.TableNumber,
		Subtotal:      completedOrder.Subtotal,
		Tax:           completedOrder.Tax,
		Total:         completedOrder.Total,
		PaymentStatus: models.PaymentPending,
		Items: []models.BillItem{
			{MenuItemName: "Buffalo Wings", Quantity: 1, Price: 9.99},
			{MenuItemName: "Grilled Salmon", Quantity: 1, Price: 18.99},
			{MenuItemName: "House Wine", Quantity: 2, Price: 8.99},
		},
	}
	return tx.Create(&bill).Error
}
