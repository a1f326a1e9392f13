package model

import "github.com/google/uuid"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ArtistID  uuid.UUID `gorm:"type:uuid;not null;index" json:"artist_id"`
	ArtworkID uuid.UUID `gorm:"type:uuid;not null;index" json:"artwork_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	BaseModel
}

type WishlistItem struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ArtworkID uuid.UUID `gorm:"type:uuid;primaryKey" json:"artwork_id"`
}
