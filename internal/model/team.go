package model

type Team struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	CompanyID string   `json:"company"`
	Members   []string `json:"members"` // user IDs
	Created   string   `json:"created,omitempty"`
	Updated   string   `json:"updated,omitempty"`
}
