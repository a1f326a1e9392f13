package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ArtworkStatus string

const (
	ArtworkPending   ArtworkStatus = "pending"
	ArtworkPublished ArtworkStatus = "published"
	ArtworkRejected  ArtworkStatus = "rejected"
	ArtworkSold      ArtworkStatus = "sold"
)

// 合法狀態轉換: pending -> published|rejected (admin), published -> sold (購買)
var artworkTransitions = map[ArtworkStatus][]ArtworkStatus{
	ArtworkPending:   {ArtworkPublished, ArtworkRejected},
	ArtworkPublished: {ArtworkSold},
}

func ParseArtworkStatus(s string) (ArtworkStatus, error) {
	switch st := ArtworkStatus(s); st {
	case ArtworkPending, ArtworkPublished, ArtworkRejected, ArtworkSold:
		return st, nil
	}
	return "", fmt.Errorf("unknown artwork status %q", s)
}

func (s ArtworkStatus) CanTransitionTo(next ArtworkStatus) bool {
	for _, allowed := range artworkTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Artwork struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ArtistID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"artist_id"`
	Title       string          `gorm:"not null;type:varchar(200)" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"not null;type:varchar(50);index" json:"category"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	ImageURL    string          `gorm:"type:varchar(500)" json:"image_url"`
	Status      ArtworkStatus   `gorm:"not null;type:varchar(20);default:pending;index" json:"status"`
	BaseModel
}
