package models

import "time"

// Document defines file metadata based on the 'documents' table
type Document struct {
	ID         int64     `json:"id" db:"id"`
	SchoolID   int64     `json:"schoolId" db:"school_id"`
	Title      string    `json:"title" db:"title"`
	Category   string    `json:"category" db:"category"`
	FilePath   string    `json:"filePath" db:"file_path"`
	FileSize   int64     `json:"fileSize" db:"file_size"`
	UploadedBy *int64    `json:"uploadedBy,omitempty" db:"uploaded_by"`
	UploadedAt time.Time `json:"uploadedAt" db:"uploaded_at"`
}
