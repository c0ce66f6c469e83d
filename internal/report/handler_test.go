package report

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func newTestApp(cafeID uint) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, uint(1))
		c.Locals(auth.CtxUserRoleKey, models.RoleAdmin)
		c.Locals(auth.CtxCafeIDKey, cafeID)
		return c.Next()
	})
	app.Get("/api/reports/sales/daily", DailySalesHandler())
	app.Get("/api/reports/sales/monthly", MonthlySalesHandler())
	return app
}

// Ödenmiş bir adisyonu verilen UTC anıyla kaydeder.
func paidBill(t *testing.T, cafeID, tableID uint, total float64, method models.PaymentMethod, paidAt time.Time) {
	t.Helper()

	ord := models.Order{
		CafeID:        cafeID,
		TableID:       tableID,
		TableNumber:   1,
		Status:        models.OrderCompleted,
		Subtotal:      total,
		Total:         total,
		PaymentStatus: models.PaymentPaid,
	}
	require.NoError(t, database.DB.Create(&ord).Error)

	b := models.Bill{
		CafeID:        cafeID,
		OrderID:       ord.ID,
		ReceiptNo:     uuid.NewString(),
		TableNumber:   1,
		Subtotal:      total,
		Total:         total,
		PaymentStatus: models.PaymentPaid,
		PaymentMethod: &method,
		PaidAt:        &paidAt,
	}
	require.NoError(t, database.DB.Create(&b).Error)
}

func fetchSummary(t *testing.T, app *fiber.App, url string) SalesSummaryResponse {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var got SalesSummaryResponse
	require.NoError(t, json.Unmarshal(body, &got))
	return got
}

// Gece yarısına yakın ödemeler UTC gün sınırına göre raporlanmalı;
// sunucunun yerel saat dilimi sonucu değiştirmemeli.
func TestDailySalesUsesUTCDayBoundary(t *testing.T) {
	setupTestDB(t)

	cafe := models.Cafe{Name: "Test Cafe"}
	require.NoError(t, database.DB.Create(&cafe).Error)
	tbl := models.Table{CafeID: cafe.ID, Number: 1, Capacity: 4, Status: models.TableAvailable}
	require.NoError(t, database.DB.Create(&tbl).Error)

	paidBill(t, cafe.ID, tbl.ID, 19.78, models.PaymentMethodCash,
		time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))
	paidBill(t, cafe.ID, tbl.ID, 41.75, models.PaymentMethodCash,
		time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC))
	paidBill(t, cafe.ID, tbl.ID, 51.66, models.PaymentMethodCard,
		time.Date(2026, 3, 11, 0, 30, 0, 0, time.UTC))

	app := newTestApp(cafe.ID)

	day1 := fetchSummary(t, app, "/api/reports/sales/daily?date=2026-03-10")
	assert.Equal(t, int64(2), day1.BillCount)
	assert.InDelta(t, 61.53, day1.GrandTotal, 0.001)
	require.Len(t, day1.Items, 1)
	assert.Equal(t, models.PaymentMethodCash, day1.Items[0].Method)

	// 00:30'daki ödeme bir sonraki güne düşer
	day2 := fetchSummary(t, app, "/api/reports/sales/daily?date=2026-03-11")
	assert.Equal(t, int64(1), day2.BillCount)
	assert.InDelta(t, 51.66, day2.GrandTotal, 0.001)
	require.Len(t, day2.Items, 1)
	assert.Equal(t, models.PaymentMethodCard, day2.Items[0].Method)
}

func TestMonthlySalesGroupsByMethod(t *testing.T) {
	setupTestDB(t)

	cafe := models.Cafe{Name: "Test Cafe"}
	require.NoError(t, database.DB.Create(&cafe).Error)
	tbl := models.Table{CafeID: cafe.ID, Number: 1, Capacity: 4, Status: models.TableAvailable}
	require.NoError(t, database.DB.Create(&tbl).Error)

	paidBill(t, cafe.ID, tbl.ID, 19.78, models.PaymentMethodCash,
		time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC))
	paidBill(t, cafe.ID, tbl.ID, 51.66, models.PaymentMethodCard,
		time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC))
	// Nisan'a ait ödeme Mart raporuna girmez
	paidBill(t, cafe.ID, tbl.ID, 10.00, models.PaymentMethodCash,
		time.Date(2026, 4, 1, 0, 1, 0, 0, time.UTC))

	app := newTestApp(cafe.ID)

	march := fetchSummary(t, app, "/api/reports/sales/monthly?year=2026&month=3")
	assert.Equal(t, int64(2), march.BillCount)
	assert.InDelta(t, 71.44, march.GrandTotal, 0.001)
	assert.Len(t, march.Items, 2)

	// Parametre doğrulama
	resp, err := app.Test(httptest.NewRequest("GET", "/api/reports/sales/monthly?year=2026&month=13", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
