package models

import "time"

type Photo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;index" json:"review_id"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	Filepath  string    `gorm:"size:500;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
