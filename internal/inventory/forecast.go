package inventory

import (
	"math"

	"github.com/shopspring/decimal"
)

// tahminde kullanılacak en yeni satış kaydı sayısı
const ForecastSaleWindow = 10

type Forecast struct {
	ExpectedSales  int             `json:"expected_sales"`
	ExpectedProfit decimal.Decimal `json:"expected_profit"`
	FutureStock    int             `json:"future_stock"`
}

// BuildForecast son satış adetlerinin aritmetik ortalamasından nokta tahmini üretir.
// Satış geçmişi boşsa beklenen satış 0'dır; stok tahmini negatife düşebilir.
func BuildForecast(quantities []int, sellingPrice, costPrice decimal.Decimal, stock int) Forecast {
	expected := 0
	if len(quantities) > 0 {
		sum := 0
		for _, q := range quantities {
			sum += q
		}
		expected = int(math.Round(float64(sum) / float64(len(quantities))))
	}

	profit := sellingPrice.Sub(costPrice).Mul(decimal.NewFromInt(int64(expected)))

	return Forecast{
		ExpectedSales:  expected,
		ExpectedProfit: profit,
		FutureStock:    stock - expected,
	}
}
