package trade

import (
	"errors"

	"envanter-backend/internal/auth"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"
	"envanter-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateSaleRequest struct {
	ProductID  uint            `json:"product_id" validate:"required"`
	CustomerID *uint           `json:"customer_id"`
	Quantity   int             `json:"quantity" validate:"required,gt=0"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
}

type SaleResponse struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	CustomerID   *uint           `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	Quantity     int             `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
}

func newSaleResponse(s models.Sale) SaleResponse {
	resp := SaleResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		CustomerID: s.CustomerID,
		Quantity:   s.Quantity,
		Amount:     s.Amount,
		Date:       s.Date.Format("2006-01-02T15:04:05Z07:00"),
	}
	if s.Product != nil {
		resp.ProductName = s.Product.Name
	}
	if s.Customer != nil {
		resp.CustomerName = s.Customer.Name
	}
	return resp
}

// GET /api/sales
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var sales []models.Sale
		if err := database.DB.Where("user_id = ?", userID).
			Preload("Product").
			Preload("Customer").
			Order("date desc").
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		res := make([]SaleResponse, 0, len(sales))
		for _, s := range sales {
			res = append(res, newSaleResponse(s))
		}
		return c.JSON(res)
	}
}

// POST /api/sales
// Stok yetersizse satış tamamen reddedilir, kısmi yazma olmaz.
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if fields := validation.Struct(body); fields != nil {
			return validation.BadRequest(c, fields)
		}
		if body.Amount.IsNegative() {
			return validation.BadRequest(c, map[string]string{"amount": "Negatif olamaz"})
		}

		sale, err := RecordSale(database.DB, userID, SaleInput{
			ProductID:  body.ProductID,
			CustomerID: body.CustomerID,
			Quantity:   body.Quantity,
			Amount:     body.Amount,
		})
		if err != nil {
			var stockErr *InsufficientStockError
			switch {
			case errors.As(err, &stockErr):
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
					"error":           stockErr.Error(),
					"available_stock": stockErr.Available,
				})
			case errors.Is(err, ErrProductNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			case errors.Is(err, ErrCustomerNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydedilemedi")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Satış kaydedildi, stok güncellendi",
			"sale":    newSaleResponse(*sale),
		})
	}
}
