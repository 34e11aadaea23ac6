package inventory

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"envanter-backend/internal/audit"
	"envanter-backend/internal/auth"
	"envanter-backend/internal/config"
	"envanter-backend/internal/database"
	"envanter-backend/internal/logger"
	"envanter-backend/internal/models"
	"envanter-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Stock        int             `json:"stock"`
	SupplierID   *uint           `json:"supplier_id"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"image_url,omitempty"`
	ExpiryDate   string          `json:"expiry_date,omitempty"`
	ExpiryStatus ExpiryStatus    `json:"expiry_status,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

// Son kullanma durumu kayıtlı satıra yazılmaz, her okumada yeniden hesaplanır.
func newProductResponse(p models.Product, now time.Time) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Stock:        p.Stock,
		SupplierID:   p.SupplierID,
		Description:  p.Description,
		ExpiryStatus: ClassifyExpiry(now, p.ExpiryDate),
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.ImagePath != "" {
		resp.ImageURL = "/product-images/" + p.ImagePath
	}
	if p.ExpiryDate != nil {
		resp.ExpiryDate = p.ExpiryDate.Format("2006-01-02")
	}
	return resp
}

type productForm struct {
	Name         string
	Category     string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Stock        int
	SupplierID   *uint
	Description  string
	ExpiryDate   *time.Time
}

// Ürün formu multipart geldiği için alanlar tek tek ayrıştırılıp
// alan bazlı hata haritası toplanır.
func parseProductForm(c *fiber.Ctx) (*productForm, map[string]string) {
	fields := map[string]string{}
	f := &productForm{}

	f.Name = strings.TrimSpace(c.FormValue("name"))
	if f.Name == "" {
		fields["name"] = "Bu alan zorunlu"
	}

	f.Category = strings.TrimSpace(c.FormValue("category"))
	f.Description = strings.TrimSpace(c.FormValue("description"))

	if v := strings.TrimSpace(c.FormValue("cost_price")); v == "" {
		fields["cost_price"] = "Bu alan zorunlu"
	} else if d, err := decimal.NewFromString(v); err != nil {
		fields["cost_price"] = "Geçerli bir sayı girin"
	} else if d.IsNegative() {
		fields["cost_price"] = "Negatif olamaz"
	} else {
		f.CostPrice = d
	}

	if v := strings.TrimSpace(c.FormValue("selling_price")); v == "" {
		fields["selling_price"] = "Bu alan zorunlu"
	} else if d, err := decimal.NewFromString(v); err != nil {
		fields["selling_price"] = "Geçerli bir sayı girin"
	} else if d.IsNegative() {
		fields["selling_price"] = "Negatif olamaz"
	} else {
		f.SellingPrice = d
	}

	if v := strings.TrimSpace(c.FormValue("stock")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields["stock"] = "Negatif olmayan bir tam sayı girin"
		} else {
			f.Stock = n
		}
	}

	if v := strings.TrimSpace(c.FormValue("supplier_id")); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			fields["supplier_id"] = "Geçersiz tedarikçi"
		} else {
			id := uint(n)
			f.SupplierID = &id
		}
	}

	if v := strings.TrimSpace(c.FormValue("expiry_date")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			fields["expiry_date"] = "Tarih formatı YYYY-AA-GG olmalı"
		} else {
			f.ExpiryDate = &d
		}
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return f, nil
}

func findOwnedProduct(c *fiber.Ctx, userID uint) (*models.Product, error) {
	id := c.Params("id")

	var product models.Product
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&product).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
	}
	return &product, nil
}

func supplierBelongsToUser(supplierID, userID uint) bool {
	var count int64
	database.DB.Model(&models.Supplier{}).
		Where("id = ? AND user_id = ?", supplierID, userID).
		Count(&count)
	return count > 0
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.Where("user_id = ?", userID).
			Order("name asc").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		now := time.Now()
		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, newProductResponse(p, now))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
// Ürün detayıyla birlikte son satışlardan üretilen satış tahmini döner.
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		product, err := findOwnedProduct(c, userID)
		if err != nil {
			return err
		}

		var quantities []int
		if err := database.DB.Model(&models.Sale{}).
			Where("product_id = ? AND user_id = ?", product.ID, userID).
			Order("date desc").
			Limit(ForecastSaleWindow).
			Pluck("quantity", &quantities).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış geçmişi okunamadı")
		}

		forecast := BuildForecast(quantities, product.SellingPrice, product.CostPrice, product.Stock)

		return c.JSON(fiber.Map{
			"product":  newProductResponse(*product, time.Now()),
			"forecast": forecast,
		})
	}
}

// POST /api/products (multipart/form-data, opsiyonel image dosyası)
func CreateProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		form, fields := parseProductForm(c)
		if fields != nil {
			return validation.BadRequest(c, fields)
		}

		if form.SupplierID != nil && !supplierBelongsToUser(*form.SupplierID, userID) {
			return validation.BadRequest(c, map[string]string{"supplier_id": "Tedarikçi bulunamadı"})
		}

		imagePath := ""
		if fh, fErr := c.FormFile("image"); fErr == nil && fh != nil {
			imagePath, err = SaveProductImage(cfg, fh)
			if err != nil {
				if errors.Is(err, ErrUnsupportedImage) {
					return validation.BadRequest(c, map[string]string{"image": "Sadece JPG ve PNG yüklenebilir"})
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Görsel kaydedilemedi")
			}
		}

		product := models.Product{
			UserID:       userID,
			Name:         form.Name,
			Category:     form.Category,
			CostPrice:    form.CostPrice,
			SellingPrice: form.SellingPrice,
			Stock:        form.Stock,
			SupplierID:   form.SupplierID,
			Description:  form.Description,
			ImagePath:    imagePath,
			ExpiryDate:   form.ExpiryDate,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			RemoveProductImage(cfg, imagePath)
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		writeProductAudit(userID, product.ID, models.AuditActionCreate,
			"Ürün eklendi: "+product.Name, nil, auditData(product))

		return c.Status(fiber.StatusCreated).JSON(newProductResponse(product, time.Now()))
	}
}

// PUT /api/products/:id (multipart/form-data, tüm alanlar gönderilir)
func UpdateProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		product, err := findOwnedProduct(c, userID)
		if err != nil {
			return err
		}

		form, fields := parseProductForm(c)
		if fields != nil {
			return validation.BadRequest(c, fields)
		}

		if form.SupplierID != nil && !supplierBelongsToUser(*form.SupplierID, userID) {
			return validation.BadRequest(c, map[string]string{"supplier_id": "Tedarikçi bulunamadı"})
		}

		before := auditData(*product)

		oldImage := ""
		newImage := ""
		if fh, fErr := c.FormFile("image"); fErr == nil && fh != nil {
			var sErr error
			newImage, sErr = SaveProductImage(cfg, fh)
			if sErr != nil {
				if errors.Is(sErr, ErrUnsupportedImage) {
					return validation.BadRequest(c, map[string]string{"image": "Sadece JPG ve PNG yüklenebilir"})
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Görsel kaydedilemedi")
			}
			oldImage = product.ImagePath
			product.ImagePath = newImage
		}

		product.Name = form.Name
		product.Category = form.Category
		product.CostPrice = form.CostPrice
		product.SellingPrice = form.SellingPrice
		product.Stock = form.Stock
		product.SupplierID = form.SupplierID
		product.Description = form.Description
		product.ExpiryDate = form.ExpiryDate

		if err := database.DB.Save(product).Error; err != nil {
			// Kayıt başarısızsa yeni yazılan görsel diskte kalmasın
			if newImage != "" {
				RemoveProductImage(cfg, newImage)
				product.ImagePath = oldImage
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		// Yeni görsel kaydedildiyse eskisi artık kullanılmıyor
		RemoveProductImage(cfg, oldImage)

		writeProductAudit(userID, product.ID, models.AuditActionUpdate,
			"Ürün güncellendi: "+product.Name, before, auditData(*product))

		return c.JSON(newProductResponse(*product, time.Now()))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		product, err := findOwnedProduct(c, userID)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		RemoveProductImage(cfg, product.ImagePath)

		writeProductAudit(userID, product.ID, models.AuditActionDelete,
			"Ürün silindi: "+product.Name, auditData(*product), nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func auditData(p models.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":            p.ID,
		"name":          p.Name,
		"category":      p.Category,
		"cost_price":    p.CostPrice,
		"selling_price": p.SellingPrice,
		"stock":         p.Stock,
		"supplier_id":   p.SupplierID,
	}
}

func writeProductAudit(userID, entityID uint, action models.AuditAction, desc string, before, after any) {
	if err := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		EntityType:  "product",
		EntityID:    entityID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); err != nil {
		logger.LogError("inventory", "writeProductAudit", desc, err)
	}
}
