package models

import "time"

type Property struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Address      string    `gorm:"size:200;not null" json:"address"`
	City         string    `gorm:"size:100;not null" json:"city"`
	PropertyType string    `gorm:"size:50;not null" json:"property_type"` // room, apartment, house
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Reviews      []Review  `gorm:"foreignKey:PropertyID" json:"-"`
}
