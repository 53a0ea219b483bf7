package model

type User struct {
	ID      string `json:"id,omitempty"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	TeamID  string `json:"team"`
	IsAdmin bool   `json:"is_admin"`
	Created string `json:"created,omitempty"`
	Updated string `json:"updated,omitempty"`
}
