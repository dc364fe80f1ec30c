package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"size:80" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Reviews      []Review  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
