package trade

import (
	"errors"
	"strings"

	"envanter-backend/internal/auth"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"
	"envanter-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreatePurchaseRequest struct {
	SupplierID  uint            `json:"supplier_id" validate:"required"`
	ProductName string          `json:"product_name" validate:"required,max=100"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	TotalPrice  decimal.Decimal `json:"total_price" validate:"required"`
}

type PurchaseResponse struct {
	ID           uint            `json:"id"`
	SupplierID   uint            `json:"supplier_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Date         string          `json:"date"`
}

func newPurchaseResponse(p models.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		ProductName: p.ProductName,
		Quantity:    p.Quantity,
		TotalPrice:  p.TotalPrice,
		Date:        p.Date.Format("2006-01-02"),
	}
	if p.Supplier != nil {
		resp.SupplierName = p.Supplier.Name
	}
	return resp
}

// GET /api/purchases
func ListPurchasesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var purchases []models.Purchase
		if err := database.DB.Where("user_id = ?", userID).
			Preload("Supplier").
			Order("date desc, id desc").
			Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alımlar listelenemedi")
		}

		res := make([]PurchaseResponse, 0, len(purchases))
		for _, p := range purchases {
			res = append(res, newPurchaseResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/purchases
// Alım her durumda kaydedilir; ürün adı eşleşmezse stok güncellenmez ve
// yanıtta uyarı döner.
func CreatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.ProductName = strings.TrimSpace(body.ProductName)

		if fields := validation.Struct(body); fields != nil {
			return validation.BadRequest(c, fields)
		}
		if body.TotalPrice.IsNegative() {
			return validation.BadRequest(c, map[string]string{"total_price": "Negatif olamaz"})
		}

		purchase, stockUpdated, err := RecordPurchase(database.DB, userID, PurchaseInput{
			SupplierID:  body.SupplierID,
			ProductName: body.ProductName,
			Quantity:    body.Quantity,
			TotalPrice:  body.TotalPrice,
		})
		if err != nil {
			if errors.Is(err, ErrSupplierNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Alım kaydedilemedi")
		}

		resp := fiber.Map{
			"purchase":      newPurchaseResponse(*purchase),
			"stock_updated": stockUpdated,
		}
		if stockUpdated {
			resp["message"] = "Alım kaydedildi, stok artırıldı"
		} else {
			resp["warning"] = "Alım kaydedildi ancak eşleşen ürün adı bulunamadı, stok güncellenmedi"
		}

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}
