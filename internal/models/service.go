package models

type Service struct {
	ID            int64  `json:"id"`
	InstitutionID int64  `json:"institution_id"`
	Name          string `json:"name"`
	AvgMinutes    int    `json:"avg_minutes"`
	Active        bool   `json:"active"`
}
