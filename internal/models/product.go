package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uint  `gorm:"primaryKey"`
	UserID       uint  `gorm:"not null;index"`
	User         *User `gorm:"constraint:OnDelete:CASCADE"`
	Name         string          `gorm:"size:200;not null;index"`
	Category     string          `gorm:"size:100"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock        int             `gorm:"not null;default:0"`
	SupplierID   *uint           `gorm:"index"`
	Supplier     *Supplier       `gorm:"constraint:OnDelete:SET NULL"`
	Description  string          `gorm:"type:text"`
	ImagePath    string          `gorm:"size:255"` // product-images klasörü altındaki dosya adı
	ExpiryDate   *time.Time      `gorm:"type:date"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
