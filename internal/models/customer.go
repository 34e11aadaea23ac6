package models

import "time"

type Customer struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    uint  `gorm:"not null;index"`
	User      *User `gorm:"constraint:OnDelete:CASCADE"`
	Name      string `gorm:"size:200;not null"`
	Phone     string `gorm:"size:100"`
	Email     string `gorm:"size:100"`
	Address   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
