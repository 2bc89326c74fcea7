package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID          int64      `json:"id" db:"id"`
	SchoolID    int64      `json:"schoolId" db:"school_id"`
	ParentID    *int64     `json:"parentId,omitempty" db:"parent_id"` // Pointer for potential NULL
	Name        string     `json:"name" db:"name"`
	AdmissionNo string     `json:"admissionNo" db:"admission_no"` // Unique per school
	ClassName   string     `json:"className" db:"class_name"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
