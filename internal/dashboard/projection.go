package dashboard

import "github.com/shopspring/decimal"

// naif ciro projeksiyonu katsayısı: son 7 günün %10 üstü
var projectionFactor = decimal.NewFromFloat(1.10)

// ProjectNextWeek son 7 günün satış toplamını katsayıyla çarpıp
// tam para birimine yuvarlar.
func ProjectNextWeek(last7Days decimal.Decimal) int64 {
	return last7Days.Mul(projectionFactor).Round(0).IntPart()
}
