package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"unique;not null;type:varchar(255)" json:"email"`
	FullName     string         `gorm:"not null;type:varchar(100)" json:"full_name"`
	Phone        string         `gorm:"type:varchar(50)" json:"phone"`
	Address      string         `gorm:"type:varchar(255)" json:"address"`
	UserType     Role           `gorm:"not null;type:varchar(20);default:user" json:"user_type"`
	Suspended    bool           `gorm:"not null;default:false" json:"suspended"`
	HashPassword string         `gorm:"not null" json:"-"`
	Artist       *ArtistProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"artist,omitempty"`
	BaseModel
}

// ArtistProfile 與 user_type=artist 的 User 一對一，首次儲存個人檔案時才建立
type ArtistProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	ArtistName      string          `gorm:"not null;type:varchar(100)" json:"artist_name"`
	Bio             string          `gorm:"type:text" json:"bio"`
	PortfolioLink   string          `gorm:"type:varchar(255)" json:"portfolio_link"`
	SocialLinks     []string        `gorm:"serializer:json;type:jsonb" json:"social_links"`
	YearsExperience int             `gorm:"not null;default:0" json:"years_experience"`
	Exhibitions     int             `gorm:"not null;default:0" json:"exhibitions"`
	AwardsWon       int             `gorm:"not null;default:0" json:"awards_won"`
	TotalSales      int             `gorm:"not null;default:0" json:"total_sales"`
	AvgRating       decimal.Decimal `gorm:"not null;type:decimal(3,2);default:0" json:"avg_rating"`
	BaseModel
}

// Profile 是登入身分加上角色延伸資料，Artist 可能尚未建立
type Profile struct {
	User   User           `json:"user"`
	Artist *ArtistProfile `json:"artist_profile"`
}

func (p *Profile) Role() Role {
	return p.User.UserType
}
