package bill

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
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

// JWT middleware yerine locals'ı doğrudan dolduran test uygulaması
func newTestApp(cafeID, userID uint) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, userID)
		c.Locals(auth.CtxUserRoleKey, models.RoleAdmin)
		c.Locals(auth.CtxCafeIDKey, cafeID)
		return c.Next()
	})
	app.Get("/api/bills", ListBillsHandler())
	app.Get("/api/bills/:id", GetBillHandler())
	app.Get("/api/bills/:id/receipt", ReceiptHandler())
	app.Post("/api/bills/:id/pay", PayBillHandler())
	return app
}

type billFixture struct {
	cafe  models.Cafe
	user  models.User
	bills []models.Bill
}

func seedBills(t *testing.T) billFixture {
	t.Helper()

	f := billFixture{}

	f.cafe = models.Cafe{Name: "Test Cafe"}
	require.NoError(t, database.DB.Create(&f.cafe).Error)

	f.user = models.User{CafeID: f.cafe.ID, Name: "Tester", Email: "tester@test.local", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, database.DB.Create(&f.user).Error)

	tbl := models.Table{CafeID: f.cafe.ID, Number: 1, Capacity: 4, Status: models.TableAvailable}
	require.NoError(t, database.DB.Create(&tbl).Error)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ord := models.Order{
			CafeID:        f.cafe.ID,
			TableID:       tbl.ID,
			TableNumber:   tbl.Number,
			Status:        models.OrderCompleted,
			Subtotal:      17.98,
			Tax:           1.80,
			Total:         19.78,
			PaymentStatus: models.PaymentBilled,
		}
		require.NoError(t, database.DB.Create(&ord).Error)

		b := models.Bill{
			CafeID:        f.cafe.ID,
			OrderID:       ord.ID,
			ReceiptNo:     uuid.NewString(),
			TableNumber:   tbl.Number,
			Subtotal:      17.98,
			Tax:           1.80,
			Total:         19.78,
			PaymentStatus: models.PaymentPending,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
			Items: []models.BillItem{
				{MenuItemName: "Burger", Quantity: 2, Price: 8.99},
			},
		}
		require.NoError(t, database.DB.Create(&b).Error)
		f.bills = append(f.bills, b)
	}

	return f
}

func TestPayBillIsIdempotent(t *testing.T) {
	setupTestDB(t)
	f := seedBills(t)

	_, err := Pay(f.cafe.ID, f.bills[0].ID, models.PaymentMethodCard)
	require.NoError(t, err)

	var first models.Bill
	require.NoError(t, database.DB.First(&first, f.bills[0].ID).Error)
	require.NotNil(t, first.PaidAt)
	require.NotNil(t, first.PaymentMethod)
	assert.Equal(t, models.PaymentPaid, first.PaymentStatus)
	assert.Equal(t, models.PaymentMethodCard, *first.PaymentMethod)

	// Sipariş de paid'e çekildi
	var ord models.Order
	require.NoError(t, database.DB.First(&ord, first.OrderID).Error)
	assert.Equal(t, models.PaymentPaid, ord.PaymentStatus)

	// Tekrarlanan çağrı hiçbir şeyi değiştirmez (farklı yöntemle bile)
	time.Sleep(20 * time.Millisecond)
	repeat, err := Pay(f.cafe.ID, f.bills[0].ID, models.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, repeat.PaymentStatus)

	var second models.Bill
	require.NoError(t, database.DB.First(&second, f.bills[0].ID).Error)
	require.NotNil(t, second.PaidAt)
	assert.Equal(t, first.PaidAt.UnixNano(), second.PaidAt.UnixNano())
	assert.Equal(t, models.PaymentMethodCard, *second.PaymentMethod)
}

func TestPayBillValidatesInput(t *testing.T) {
	setupTestDB(t)
	f := seedBills(t)
	app := newTestApp(f.cafe.ID, f.user.ID)

	// Geçersiz ödeme yöntemi
	req := httptest.NewRequest("POST", "/api/bills/1/pay", strings.NewReader(`{"payment_method":"bitcoin"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Olmayan adisyon
	req = httptest.NewRequest("POST", "/api/bills/9999/pay", strings.NewReader(`{"payment_method":"cash"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListBillsFiltersByPaymentStatusNewestFirst(t *testing.T) {
	setupTestDB(t)
	f := seedBills(t)
	app := newTestApp(f.cafe.ID, f.user.ID)

	// En eski ve en yeni adisyon ödensin
	_, err := Pay(f.cafe.ID, f.bills[0].ID, models.PaymentMethodCash)
	require.NoError(t, err)
	_, err = Pay(f.cafe.ID, f.bills[2].ID, models.PaymentMethodCard)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/bills?payment_status=paid", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var got []BillResponse
	require.NoError(t, json.Unmarshal(body, &got))

	// Sadece ödenmişler, oluşturulma zamanına göre yeniden eskiye
	require.Len(t, got, 2)
	assert.Equal(t, f.bills[2].ID, got[0].ID)
	assert.Equal(t, f.bills[0].ID, got[1].ID)
	for _, b := range got {
		assert.Equal(t, models.PaymentPaid, b.PaymentStatus)
		require.Len(t, b.Items, 1)
	}
}

func TestReceiptRendersHTML(t *testing.T) {
	setupTestDB(t)
	f := seedBills(t)
	app := newTestApp(f.cafe.ID, f.user.ID)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/bills/1/receipt", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	html := string(body)
	assert.Contains(t, html, "Test Cafe")
	assert.Contains(t, html, f.bills[0].ReceiptNo)
	assert.Contains(t, html, "Burger")
	assert.Contains(t, html, "19.78")
}
