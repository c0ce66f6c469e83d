package pricing

import "github.com/shopspring/decimal"

// KDV oranı her kalem için sabit %10 uygulanır.
var taxRate = decimal.New(10, -2) // 0.10

type Line struct {
	Price    float64
	Quantity int
}

// Subtotal = Σ(birim fiyat × adet). Kuruş hassasiyeti için decimal ile toplanır.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum.Round(2)
}

// Tax = subtotal × 0.10, iki haneye yuvarlanır (half-up).
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Round(2)
}

// Totals - Sipariş ve adisyon tutarlarının tek hesaplandığı yer.
// Ara toplam, vergi ve genel toplamı float64 olarak döndürür;
// kolonlar float64 tutulduğu için son adımda dönüştürülür.
func Totals(lines []Line) (subtotal, tax, total float64) {
	sub := Subtotal(lines)
	t := Tax(sub)
	return sub.InexactFloat64(), t.InexactFloat64(), sub.Add(t).InexactFloat64()
}
