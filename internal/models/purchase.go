package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase üründen bağımsız serbest metin product_name tutar; stok güncellemesi
// isim eşleşmesiyle yapılır (FK yok, bilinçli olarak orijinal davranış korundu).
type Purchase struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      uint  `gorm:"not null;index"`
	User        *User `gorm:"constraint:OnDelete:CASCADE"`
	SupplierID  uint      `gorm:"not null;index"`
	Supplier    *Supplier `gorm:"constraint:OnDelete:CASCADE"`
	ProductName string          `gorm:"size:100;not null"`
	Quantity    int             `gorm:"not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date        time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
