package bill

import (
	"bytes"
	"fmt"
	"html/template"

	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Yazdırılabilir fiş: adisyondan üretilen bağımsız HTML sayfası.
// Tarayıcıda açılır, yazdır düğmesi platformun print dialogunu çağırır.
var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="utf-8">
<title>Fiş {{.ReceiptNo}}</title>
<style>
  body { font-family: monospace; max-width: 360px; margin: 24px auto; }
  h1 { font-size: 16px; text-align: center; }
  .meta { font-size: 12px; margin-bottom: 12px; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  th, td { text-align: left; padding: 2px 0; }
  td.num, th.num { text-align: right; }
  .totals { border-top: 1px dashed #000; margin-top: 8px; padding-top: 8px; }
  .grand { font-weight: bold; }
  .paid { text-align: center; margin-top: 12px; font-weight: bold; }
  @media print { .no-print { display: none; } }
</style>
</head>
<body>
<h1>{{.CafeName}}</h1>
<div class="meta">
  Fiş No: {{.ReceiptNo}}<br>
  Masa: {{.TableNumber}}<br>
  Tarih: {{.CreatedAt}}
</div>
<table>
  <tr><th>Ürün</th><th class="num">Adet</th><th class="num">Tutar</th></tr>
  {{range .Items}}
  <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.LineTotal}}</td></tr>
  {{end}}
</table>
<table class="totals">
  <tr><td>Ara Toplam</td><td class="num">{{.Subtotal}}</td></tr>
  <tr><td>KDV (%10)</td><td class="num">{{.Tax}}</td></tr>
  <tr class="grand"><td>Toplam</td><td class="num">{{.Total}}</td></tr>
</table>
{{if .Paid}}<div class="paid">ÖDENDİ{{if .PaymentMethod}} ({{.PaymentMethod}}){{end}}</div>{{end}}
<div class="no-print" style="text-align:center;margin-top:16px;">
  <button onclick="window.print()">Yazdır</button>
</div>
</body>
</html>
`))

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

type receiptItem struct {
	Name      string
	Quantity  int
	LineTotal string
}

type receiptData struct {
	CafeName      string
	ReceiptNo     string
	TableNumber   int
	CreatedAt     string
	Items         []receiptItem
	Subtotal      string
	Tax           string
	Total         string
	Paid          bool
	PaymentMethod string
}

// GET /api/bills/:id/receipt
func ReceiptHandler() fiber.Handler {
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

		var cafe models.Cafe
		if err := database.DB.First(&cafe, "id = ?", cafeID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kafe bilgisi yüklenemedi")
		}

		data := receiptData{
			CafeName:    cafe.Name,
			ReceiptNo:   b.ReceiptNo,
			TableNumber: b.TableNumber,
			CreatedAt:   b.CreatedAt.Format("02.01.2006 15:04"),
			Subtotal:    formatAmount(b.Subtotal),
			Tax:         formatAmount(b.Tax),
			Total:       formatAmount(b.Total),
			Paid:        b.PaymentStatus == models.PaymentPaid,
		}
		if b.PaymentMethod != nil {
			data.PaymentMethod = string(*b.PaymentMethod)
		}
		for _, it := range b.Items {
			data.Items = append(data.Items, receiptItem{
				Name:      it.MenuItemName,
				Quantity:  it.Quantity,
				LineTotal: formatAmount(it.Price * float64(it.Quantity)),
			})
		}

		var buf bytes.Buffer
		if err := receiptTmpl.Execute(&buf, data); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş oluşturulamadı")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	}
}
