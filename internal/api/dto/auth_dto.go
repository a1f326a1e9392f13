package dto

import (
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
)

type RegisterRequest struct {
	Email    string `json:"email" example:"frida@example.com"`
	Password string `json:"password" example:"correct-horse"`
	FullName string `json:"full_name" example:"Frida Kahlo"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	UserType string `json:"user_type,omitempty" example:"artist"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Profile   model.Profile `json:"profile"`
}

type ArtistProfileRequest struct {
	ArtistName      string   `json:"artist_name"`
	Bio             string   `json:"bio"`
	PortfolioLink   string   `json:"portfolio_link"`
	SocialLinks     []string `json:"social_links"`
	YearsExperience int      `json:"years_experience"`
	Exhibitions     int      `json:"exhibitions"`
	AwardsWon       int      `json:"awards_won"`
}

type SuspendRequest struct {
	Suspended bool `json:"suspended"`
}
