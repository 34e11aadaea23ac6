package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID         uint  `gorm:"primaryKey"`
	UserID     uint  `gorm:"not null;index"`
	User       *User `gorm:"constraint:OnDelete:CASCADE"`
	ProductID  uint     `gorm:"not null;index"`
	Product    *Product `gorm:"constraint:OnDelete:CASCADE"`
	CustomerID *uint    `gorm:"index"`
	Customer   *Customer `gorm:"constraint:OnDelete:SET NULL"`
	Quantity   int             `gorm:"not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date       time.Time       `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
