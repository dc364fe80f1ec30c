package models

import "time"

// Review is a 1-5 star rating of a property, optionally tied to the user who
// wrote it. UserID stays nil for anonymous reviews.
type Review struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PropertyID     uint      `gorm:"not null" json:"property_id"`
	UserID         *uint     `gorm:"index:idx_review_user_id" json:"user_id,omitempty"`
	ReviewerName   string    `gorm:"size:100;not null" json:"reviewer_name"`
	Rating         int       `gorm:"not null" json:"rating"` // 1-5 stars
	ReviewText     string    `gorm:"type:text" json:"review_text"`
	LandlordName   string    `gorm:"size:100" json:"landlord_name"`
	LandlordRating *int      `json:"landlord_rating"` // 1-5 stars
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	Property       Property  `gorm:"foreignKey:PropertyID" json:"-"`
	Photos         []Photo   `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
}
