package trade

import (
	"errors"
	"fmt"
	"time"

	"envanter-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("ürün bulunamadı")
	ErrCustomerNotFound = errors.New("müşteri bulunamadı")
	ErrSupplierNotFound = errors.New("tedarikçi bulunamadı")
)

// InsufficientStockError stok yetersizliğinde mevcut stok miktarını taşır.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Yetersiz stok! Sadece %d adet kaldı.", e.Available)
}

type SaleInput struct {
	ProductID  uint
	CustomerID *uint
	Quantity   int
	Amount     decimal.Decimal
}

// RecordSale satışı kaydeder ve ürün stoğunu aynı transaction içinde düşürür.
// Stok kontrolü koşullu UPDATE ile yapılır: eşzamanlı satışlarda stok asla
// negatife düşmez, yetersizse hiçbir şey yazılmaz.
func RecordSale(db *gorm.DB, userID uint, in SaleInput) (*models.Sale, error) {
	var product models.Product
	if err := db.Where("id = ? AND user_id = ?", in.ProductID, userID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if in.CustomerID != nil {
		var count int64
		if err := db.Model(&models.Customer{}).
			Where("id = ? AND user_id = ?", *in.CustomerID, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrCustomerNotFound
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	res := tx.Model(&models.Product{}).
		Where("id = ? AND user_id = ? AND stock >= ?", in.ProductID, userID, in.Quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", in.Quantity))
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		// mevcut stok sadece hata mesajı için okunur
		var current models.Product
		if err := db.Select("stock").Where("id = ?", in.ProductID).First(&current).Error; err != nil {
			return nil, err
		}
		return nil, &InsufficientStockError{Available: current.Stock}
	}

	sale := models.Sale{
		UserID:     userID,
		ProductID:  in.ProductID,
		CustomerID: in.CustomerID,
		Quantity:   in.Quantity,
		Amount:     in.Amount,
		Date:       time.Now(),
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

type PurchaseInput struct {
	SupplierID  uint
	ProductName string
	Quantity    int
	TotalPrice  decimal.Decimal
}

// RecordPurchase alımı her durumda kaydeder. Ürün adı birebir (büyük/küçük
// harf duyarlı) eşleşirse stok aynı transaction içinde artırılır; eşleşme
// yoksa alım yine kalıcıdır ve stockUpdated=false döner.
func RecordPurchase(db *gorm.DB, userID uint, in PurchaseInput) (*models.Purchase, bool, error) {
	var count int64
	if err := db.Model(&models.Supplier{}).
		Where("id = ? AND user_id = ?", in.SupplierID, userID).
		Count(&count).Error; err != nil {
		return nil, false, err
	}
	if count == 0 {
		return nil, false, ErrSupplierNotFound
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, false, tx.Error
	}

	purchase := models.Purchase{
		UserID:      userID,
		SupplierID:  in.SupplierID,
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		TotalPrice:  in.TotalPrice,
		Date:        time.Now(),
	}
	if err := tx.Create(&purchase).Error; err != nil {
		tx.Rollback()
		return nil, false, err
	}

	stockUpdated := false
	var product models.Product
	err := tx.Where("user_id = ? AND name = ?", userID, in.ProductName).First(&product).Error
	switch {
	case err == nil:
		if err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("stock", gorm.Expr("stock + ?", in.Quantity)).Error; err != nil {
			tx.Rollback()
			return nil, false, err
		}
		stockUpdated = true
	case errors.Is(err, gorm.ErrRecordNotFound):
		// eşleşen ürün yok; alım yine de kaydedilir
	default:
		tx.Rollback()
		return nil, false, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, false, err
	}
	return &purchase, stockUpdated, nil
}
