package models

// QueueSummary is the public snapshot of one queue scope. A scope is an
// institution plus an optional service; tickets in different scopes never
// share positions.
type QueueSummary struct {
	InstitutionID        int64  `json:"institution_id"`
	ServiceID            *int64 `json:"service_id,omitempty"`
	CurrentNumber        string `json:"current_number,omitempty"`
	PeopleWaiting        int    `json:"people_waiting"`
	EstimatedWaitMinutes int    `json:"estimated_wait_minutes"`
	AvgServiceMinutes    int    `json:"avg_service_minutes"`
}
