package models

import "time"

// Report defines a generated report artifact based on the 'reports' table.
// Rows are created by the scheduled pipeline (pending-request processing,
// term-end generation) and deleted by the cleanup job past the retention window.
type Report struct {
	ID          int64        `json:"id" db:"id"`
	SchoolID    int64        `json:"schoolId" db:"school_id"`
	Title       string       `json:"title" db:"title"`
	ReportType  ReportType   `json:"reportType" db:"report_type"`
	Term        string       `json:"term" db:"term"`              // e.g. "Term 1"
	SchoolYear  string       `json:"schoolYear" db:"school_year"` // e.g. "2025-2026"
	Status      ReportStatus `json:"status" db:"status"`
	Content     []byte       `json:"-" db:"content"` // jsonb summary payload
	GeneratedBy *int64       `json:"generatedBy,omitempty" db:"generated_by"`
	GeneratedAt time.Time    `json:"generatedAt" db:"generated_at"`
}

// ReportRequest is a pending unit of report-generation work based on the
// 'report_requests' table. The process-pending job drains PENDING rows.
type ReportRequest struct {
	ID          int64         `json:"id" db:"id"`
	SchoolID    int64         `json:"schoolId" db:"school_id"`
	StudentID   int64         `json:"studentId" db:"student_id"`
	Term        string        `json:"term" db:"term"`
	SchoolYear  string        `json:"schoolYear" db:"school_year"`
	Status      RequestStatus `json:"status" db:"status"`
	RequestedAt time.Time     `json:"requestedAt" db:"requested_at"`
	ProcessedAt *time.Time    `json:"processedAt,omitempty" db:"processed_at"`
	ReportID    *int64        `json:"reportId,omitempty" db:"report_id"`
	LastError   string        `json:"lastError,omitempty" db:"last_error"`
}
