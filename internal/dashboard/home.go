package dashboard

import (
	"time"

	"envanter-backend/internal/database"
	"envanter-backend/internal/inventory"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// vitrin sayacı: stoğu bu eşiğin altındaki ürünler "azalıyor" sayılır
const lowStockThreshold = 5

type HomeProductPreview struct {
	ID           uint                   `json:"id"`
	Name         string                 `json:"name"`
	SellingPrice decimal.Decimal        `json:"selling_price"`
	Stock        int                    `json:"stock"`
	ImageURL     string                 `json:"image_url,omitempty"`
	ExpiryStatus inventory.ExpiryStatus `json:"expiry_status,omitempty"`
}

type HomeResponse struct {
	Products     []HomeProductPreview `json:"products"`
	LowStock     int64                `json:"low_stock"`
	SoonExpiring int64                `json:"soon_expiring"`
}

// GET /api/home
// Halka açık vitrin: ilk 6 ürün ve genel sayaçlar, kullanıcı filtresi yok.
func HomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("id asc").Limit(6).Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		now := time.Now()
		preview := make([]HomeProductPreview, 0, len(products))
		for _, p := range products {
			item := HomeProductPreview{
				ID:           p.ID,
				Name:         p.Name,
				SellingPrice: p.SellingPrice,
				Stock:        p.Stock,
				ExpiryStatus: inventory.ClassifyExpiry(now, p.ExpiryDate),
			}
			if p.ImagePath != "" {
				item.ImageURL = "/product-images/" + p.ImagePath
			}
			preview = append(preview, item)
		}

		var lowStock int64
		database.DB.Model(&models.Product{}).
			Where("stock < ?", lowStockThreshold).
			Count(&lowStock)

		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		var soonExpiring int64
		database.DB.Model(&models.Product{}).
			Where("expiry_date IS NOT NULL AND expiry_date <= ?", today.AddDate(0, 0, 7)).
			Count(&soonExpiring)

		return c.JSON(HomeResponse{
			Products:     preview,
			LowStock:     lowStock,
			SoonExpiring: soonExpiring,
		})
	}
}
