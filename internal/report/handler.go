package report

import (
	"fmt"
	"time"

	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SalesSummaryItem struct {
	Method models.PaymentMethod `json:"method"`
	Count  int64                `json:"count"`
	Total  float64              `json:"total"`
}

type SalesSummaryResponse struct {
	CafeID     uint               `json:"cafe_id"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	Items      []SalesSummaryItem `json:"items"`
	BillCount  int64              `json:"bill_count"`
	GrandTotal float64            `json:"grand_total"`
}

// Ödenen adisyonları ödeme yöntemine göre toplar.
func summarize(cafeID uint, from, to time.Time) (*SalesSummaryResponse, error) {
	type row struct {
		Method models.PaymentMethod `gorm:"column:payment_method"`
		Count  int64                `gorm:"column:count"`
		Total  float64              `gorm:"column:total"`
	}
	var rows []row

	if err := database.DB.
		Model(&models.Bill{}).
		Select("payment_method, COUNT(*) as count, SUM(total) as total").
		Where("cafe_id = ? AND payment_status = ? AND paid_at >= ? AND paid_at < ?",
			cafeID, models.PaymentPaid, from, to).
		Group("payment_method").
		Scan(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
	}

	resp := &SalesSummaryResponse{
		CafeID: cafeID,
		From:   from.Format("2006-01-02"),
		To:     to.AddDate(0, 0, -1).Format("2006-01-02"),
		Items:  make([]SalesSummaryItem, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Items = append(resp.Items, SalesSummaryItem{
			Method: r.Method,
			Count:  r.Count,
			Total:  r.Total,
		})
		resp.BillCount += r.Count
		resp.GrandTotal += r.Total
	}
	return resp, nil
}

// GET /api/reports/sales/daily?date=2025-12-09
func DailySalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		dateStr := c.Query("date")
		if dateStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "date zorunlu")
		}
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		resp, err := summarize(cafeID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

// GET /api/reports/sales/monthly?year=2025&month=12
func MonthlySalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cafeID, err := auth.CafeIDFromCtx(c)
		if err != nil {
			return err
		}

		yearStr := c.Query("year")
		monthStr := c.Query("month")
		if yearStr == "" || monthStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year ve month zorunlu")
		}

		var year, month int
		if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
		}
		if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month geçersiz")
		}

		// Gün sınırları UTC; time.Parse ile gelen günlük pencereyle aynı zeminde
		firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

		resp, err := summarize(cafeID, firstDay, firstDay.AddDate(0, 1, 0))
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}
