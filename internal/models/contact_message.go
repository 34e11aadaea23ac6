package models

import "time"

// ContactMessage halka açık iletişim formundan gelir, kullanıcıya bağlı değildir.
type ContactMessage struct {
	ID          uint   `gorm:"primaryKey"`
	FullName    string `gorm:"size:100;not null"`
	Email       string `gorm:"size:100;not null"`
	Message     string `gorm:"type:text;not null"`
	SubmittedAt time.Time `gorm:"autoCreateTime"`
}
