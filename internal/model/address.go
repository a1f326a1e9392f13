package model

import (
	"strings"

	"github.com/google/uuid"
)

type Address struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	FirstName string    `gorm:"not null;type:varchar(100)" json:"firstName"`
	LastName  string    `gorm:"not null;type:varchar(100)" json:"lastName"`
	Email     string    `gorm:"not null;type:varchar(255)" json:"email"`
	Phone     string    `gorm:"not null;type:varchar(50)" json:"phone"`
	Street    string    `gorm:"not null;type:varchar(255)" json:"street"`
	City      string    `gorm:"not null;type:varchar(100)" json:"city"`
	State     string    `gorm:"not null;type:varchar(100)" json:"state"`
	ZipCode   string    `gorm:"not null;type:varchar(20)" json:"zipCode"`
	Country   string    `gorm:"not null;type:varchar(100)" json:"country"`
}

// MissingFields 回傳未填的欄位名稱 (json 名稱)
func (a Address) MissingFields() []string {
	fields := []struct {
		name  string
		value string
	}{
		{"firstName", a.FirstName},
		{"lastName", a.LastName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
		{"country", a.Country},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
