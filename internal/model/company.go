package model

type Company struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name"`
	Teams   []string `json:"teams"`
	Active  bool     `json:"active"`
	Created string   `json:"created,omitempty"`
	Updated string   `json:"updated,omitempty"`
}
