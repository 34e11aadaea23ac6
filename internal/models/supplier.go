package models

import "time"

type Supplier struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    uint  `gorm:"not null;index"`
	User      *User `gorm:"constraint:OnDelete:CASCADE"`
	Name      string `gorm:"size:100;not null"`
	Contact   string `gorm:"size:15;not null"`
	Email     string `gorm:"size:100;not null"`
	Address   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
