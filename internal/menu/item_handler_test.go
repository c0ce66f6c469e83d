package menu

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
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
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, uint(1))
		c.Locals(auth.CtxUserRoleKey, models.RoleAdmin)
		c.Locals(auth.CtxCafeIDKey, cafeID)
		return c.Next()
	})
	app.Get("/api/menu-items", ListMenuItemsHandler())
	return app
}

// Satışa kapalı ürün false olarak yazılıp false olarak okunmalı.
func TestUnavailableItemPersistsAsFalse(t *testing.T) {
	setupTestDB(t)

	cafe := models.Cafe{Name: "Test Cafe"}
	require.NoError(t, database.DB.Create(&cafe).Error)
	cat := models.Category{CafeID: cafe.ID, Name: "Desserts"}
	require.NoError(t, database.DB.Create(&cat).Error)

	item := models.MenuItem{CafeID: cafe.ID, CategoryID: cat.ID, Name: "Tiramisu", Price: 5.99, Available: false}
	require.NoError(t, database.DB.Create(&item).Error)

	var saved models.MenuItem
	require.NoError(t, database.DB.First(&saved, item.ID).Error)
	assert.False(t, saved.Available)

	// Toplu insert'te de kaybolmamalı
	batch := []models.MenuItem{
		{CafeID: cafe.ID, CategoryID: cat.ID, Name: "Cheesecake", Price: 6.49, Available: true},
		{CafeID: cafe.ID, CategoryID: cat.ID, Name: "Baklava", Price: 7.99, Available: false},
	}
	require.NoError(t, database.DB.Create(&batch).Error)

	var baklava models.MenuItem
	require.NoError(t, database.DB.First(&baklava, "name = ?", "Baklava").Error)
	assert.False(t, baklava.Available)
}

func TestListMenuItemsFiltersByAvailability(t *testing.T) {
	setupTestDB(t)

	cafe := models.Cafe{Name: "Test Cafe"}
	require.NoError(t, database.DB.Create(&cafe).Error)
	cat := models.Category{CafeID: cafe.ID, Name: "Main Course"}
	require.NoError(t, database.DB.Create(&cat).Error)

	items := []models.MenuItem{
		{CafeID: cafe.ID, CategoryID: cat.ID, Name: "Burger", Price: 8.99, Available: true},
		{CafeID: cafe.ID, CategoryID: cat.ID, Name: "Tiramisu", Price: 5.99, Available: false},
	}
	require.NoError(t, database.DB.Create(&items).Error)

	app := newTestApp(cafe.ID)

	fetch := func(url string) []MenuItemResponse {
		resp, err := app.Test(httptest.NewRequest("GET", url, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var got []MenuItemResponse
		require.NoError(t, json.Unmarshal(body, &got))
		return got
	}

	available := fetch("/api/menu-items?available=true")
	require.Len(t, available, 1)
	assert.Equal(t, "Burger", available[0].Name)
	assert.True(t, available[0].Available)

	soldOut := fetch("/api/menu-items?available=false")
	require.Len(t, soldOut, 1)
	assert.Equal(t, "Tiramisu", soldOut[0].Name)
	assert.False(t, soldOut[0].Available)
}
