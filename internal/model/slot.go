package model

type Slot struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Date         string   `json:"date"`  // YYYY-MM-DD
	Start        string   `json:"start"` // HH:MM
	End          string   `json:"end"`   // HH:MM
	Capacity     int      `json:"capacity"`
	Space        int      `json:"space"` // minutes between appointments
	CategoryID   string   `json:"category"`
	CompanyID    string   `json:"company"`
	TeamID       string   `json:"team"`
	Active       bool     `json:"active"`
	Appointments []string `json:"appointments"` // ordered appointment IDs
	Created      string   `json:"created,omitempty"`
	Updated      string   `json:"updated,omitempty"`
}
