package dashboard

import (
	"fmt"
	"time"

	"envanter-backend/internal/auth"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardResponse struct {
	TotalProducts     int64           `json:"total_products"`
	TotalSuppliers    int64           `json:"total_suppliers"`
	TotalCustomers    int64           `json:"total_customers"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	Last7DaysSales    decimal.Decimal `json:"last_7_days_sales"`
	PredictedNextWeek int64           `json:"predicted_next_week"`
}

// BuildSummary kullanıcının özet sayılarını hesaplar. Tüm toplamlar decimal
// olarak SQL tarafında hesaplanır, float kayması olmaz.
func BuildSummary(db *gorm.DB, userID uint, now time.Time) (DashboardResponse, error) {
	var resp DashboardResponse

	if err := db.Model(&models.Product{}).Where("user_id = ?", userID).Count(&resp.TotalProducts).Error; err != nil {
		return resp, err
	}
	if err := db.Model(&models.Supplier{}).Where("user_id = ?", userID).Count(&resp.TotalSuppliers).Error; err != nil {
		return resp, err
	}
	if err := db.Model(&models.Customer{}).Where("user_id = ?", userID).Count(&resp.TotalCustomers).Error; err != nil {
		return resp, err
	}

	var totalRow struct{ Total decimal.Decimal }
	if err := db.Model(&models.Sale{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&totalRow).Error; err != nil {
		return resp, err
	}
	resp.TotalSales = totalRow.Total

	weekAgo := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -7)

	var weekRow struct{ Total decimal.Decimal }
	if err := db.Model(&models.Sale{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND date >= ?", userID, weekAgo).
		Scan(&weekRow).Error; err != nil {
		return resp, err
	}
	resp.Last7DaysSales = weekRow.Total
	resp.PredictedNextWeek = ProjectNextWeek(weekRow.Total)

	return resp, nil
}

// GET /api/dashboard
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		resp, err := BuildSummary(database.DB, userID, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		return c.JSON(resp)
	}
}

type SalesChartPoint struct {
	Label string          `json:"label"` // tarih / hafta başlangıcı / ay başlangıcı
	Total decimal.Decimal `json:"total"`
}

type SalesChartResponse struct {
	Period     string            `json:"period"` // daily | weekly | monthly
	From       string            `json:"from"`
	To         string            `json:"to"`
	Points     []SalesChartPoint `json:"points"`
	GrandTotal decimal.Decimal   `json:"grand_total"`
}

// chartWindow grafik aralığının [start, end) sınırlarını hesaplar.
// Haftalık periyotta start haftanın pazartesisine hizalanır ki en eski
// bucket eksik hafta olmasın (date_trunc('week') pazartesiden başlar).
func chartWindow(period string, count int, now time.Time) (time.Time, time.Time) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch period {
	case "weekly":
		weekday := (int(today.Weekday()) + 6) % 7 // Pazartesi = 0
		weekStart := today.AddDate(0, 0, -weekday)
		return weekStart.AddDate(0, 0, -7*(count-1)), today.AddDate(0, 0, 1)
	case "monthly":
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return monthStart.AddDate(0, -(count - 1), 0), monthStart.AddDate(0, 1, 0)
	default:
		return today.AddDate(0, 0, -(count - 1)), today.AddDate(0, 0, 1)
	}
}

// GET /api/dashboard/sales-chart?period=daily&count=7
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count geçersiz")
			}
		}

		var sql string
		switch period {
		case "weekly":
			sql = `
				SELECT date_trunc('week', date)::date AS bucket,
					   SUM(amount) AS total
				FROM sales
				WHERE user_id = ? AND date >= ? AND date < ?
				GROUP BY bucket
				ORDER BY bucket ASC;
			`
		case "monthly":
			sql = `
				SELECT date_trunc('month', date)::date AS bucket,
					   SUM(amount) AS total
				FROM sales
				WHERE user_id = ? AND date >= ? AND date < ?
				GROUP BY bucket
				ORDER BY bucket ASC;
			`
		default:
			period = "daily"
			sql = `
				SELECT date::date AS bucket,
					   SUM(amount) AS total
				FROM sales
				WHERE user_id = ? AND date >= ? AND date < ?
				GROUP BY bucket
				ORDER BY bucket ASC;
			`
		}

		start, end := chartWindow(period, count, time.Now())

		type row struct {
			Bucket time.Time       `gorm:"column:bucket"`
			Total  decimal.Decimal `gorm:"column:total"`
		}
		var rows []row

		if err := database.DB.Raw(sql, userID, start, end).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Veri toplanırken hata oluştu")
		}

		points := make([]SalesChartPoint, 0, len(rows))
		grand := decimal.Zero
		for _, r := range rows {
			points = append(points, SalesChartPoint{
				Label: r.Bucket.Format("2006-01-02"),
				Total: r.Total,
			})
			grand = grand.Add(r.Total)
		}

		return c.JSON(SalesChartResponse{
			Period:     period,
			From:       start.Format("2006-01-02"),
			To:         end.AddDate(0, 0, -1).Format("2006-01-02"),
			Points:     points,
			GrandTotal: grand,
		})
	}
}
