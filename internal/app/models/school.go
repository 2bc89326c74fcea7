package models

import "time"

// School defines the tenant boundary based on the 'schools' table.
// Every teacher, parent, student, document and report belongs to exactly one school.
type School struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Name         string    `json:"name" db:"name" example:"Riverside Academy"`
	Code         string    `json:"code" db:"code" example:"RVA001"`
	Level        string    `json:"level" db:"level" example:"Primary"`
	Location     string    `json:"location" db:"location" example:"Nairobi"`
	ContactEmail string    `json:"contactEmail" db:"contact_email" example:"admin@riverside.ac.ke"`
	ContactPhone string    `json:"contactPhone" db:"contact_phone" example:"0700000000"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
