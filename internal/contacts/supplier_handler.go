package contacts

import (
	"strings"

	"envanter-backend/internal/audit"
	"envanter-backend/internal/auth"
	"envanter-backend/internal/database"
	"envanter-backend/internal/logger"
	"envanter-backend/internal/models"
	"envanter-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Contact string `json:"contact" validate:"required,max=15"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
}

type SupplierResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

func newSupplierResponse(s models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GET /api/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var suppliers []models.Supplier
		if err := database.DB.Where("user_id = ?", userID).
			Order("name asc").
			Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler listelenemedi")
		}

		res := make([]SupplierResponse, 0, len(suppliers))
		for _, s := range suppliers {
			res = append(res, newSupplierResponse(s))
		}
		return c.JSON(res)
	}
}

// POST /api/suppliers
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Contact = strings.TrimSpace(body.Contact)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if fields := validation.Struct(body); fields != nil {
			return validation.BadRequest(c, fields)
		}

		supplier := models.Supplier{
			UserID:  userID,
			Name:    body.Name,
			Contact: body.Contact,
			Email:   body.Email,
			Address: strings.TrimSpace(body.Address),
		}

		if err := database.DB.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(newSupplierResponse(supplier))
	}
}

// PUT /api/suppliers/:id
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var supplier models.Supplier
		if err := database.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).
			First(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		var body UpdateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if fields := validation.Struct(body); fields != nil {
			return validation.BadRequest(c, fields)
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return validation.BadRequest(c, map[string]string{"name": "Bu alan zorunlu"})
			}
			supplier.Name = name
		}
		if body.Contact != nil {
			contact := strings.TrimSpace(*body.Contact)
			if contact == "" {
				return validation.BadRequest(c, map[string]string{"contact": "Bu alan zorunlu"})
			}
			supplier.Contact = contact
		}
		if body.Email != nil {
			supplier.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Address != nil {
			supplier.Address = strings.TrimSpace(*body.Address)
		}

		if err := database.DB.Save(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi güncellenemedi")
		}

		return c.JSON(newSupplierResponse(supplier))
	}
}

// DELETE /api/suppliers/:id
// Tedarikçiye bağlı ürünlerin referansı NULL'a çekilir, silme tek transaction'da yapılır.
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var supplier models.Supplier
		if err := database.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).
			First(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem başlatılamadı")
		}

		if err := tx.Model(&models.Product{}).
			Where("supplier_id = ?", supplier.ID).
			Update("supplier_id", nil).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün referansları güncellenemedi")
		}

		if err := tx.Delete(&supplier).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi silinemedi")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem tamamlanamadı")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			EntityType:  "supplier",
			EntityID:    supplier.ID,
			Action:      models.AuditActionDelete,
			Description: "Tedarikçi silindi: " + supplier.Name,
			Before: map[string]interface{}{
				"id":      supplier.ID,
				"name":    supplier.Name,
				"contact": supplier.Contact,
				"email":   supplier.Email,
			},
		}); logErr != nil {
			logger.LogError("contacts", "DeleteSupplierHandler", "audit", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
