package domain

import "time"

// Service is a read-only catalog entry.
type Service struct {
	ID          string     `json:"_id"`
	ServiceID   string     `json:"service_id"`
	Title       string     `json:"title"`
	Img         string     `json:"img"`
	Price       float64    `json:"price"`
	Description string     `json:"description"`
	Facility    []Facility `json:"facility"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Facility struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}
