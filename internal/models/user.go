package models

import "time"

type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	InstitutionID *int64     `json:"institution_id,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

const (
	RoleCitizen  = "citizen"
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleCitizen, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}
