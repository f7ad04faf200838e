package models

import "time"

type Institution struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Location  string    `json:"location"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	CategoryHospital  = "hospital"
	CategoryMunicipal = "municipal"
	CategoryBank      = "bank"
	CategoryTransport = "transport"
)

func ValidCategory(category string) bool {
	switch category {
	case CategoryHospital, CategoryMunicipal, CategoryBank, CategoryTransport:
		return true
	default:
		return false
	}
}
