package models

import "time"

// Teacher defines the teacher person record based on the 'teachers' table
type Teacher struct {
	ID       int64      `json:"id" db:"id"`
	SchoolID int64      `json:"schoolId" db:"school_id"`
	UserID   *int64     `json:"userId,omitempty" db:"user_id"` // Linked login account (nullable)
	Name     string     `json:"name" db:"name"`
	Email    string     `json:"email" db:"email"`
	Phone    string     `json:"phone" db:"phone"`
	Subject  string     `json:"subject" db:"subject"`
	HiredAt  *time.Time `json:"hiredAt,omitempty" db:"hired_at"`
}

// Parent defines the parent person record based on the 'parents' table
type Parent struct {
	ID       int64  `json:"id" db:"id"`
	SchoolID int64  `json:"schoolId" db:"school_id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Phone    string `json:"phone" db:"phone"`
	Address  string `json:"address" db:"address"`
}
