package dto

// CreateReportRequestRequest enqueues a student term-report request.
// The scheduled pipeline drains PENDING requests every cycle.
type CreateReportRequestRequest struct {
	StudentID  int64  `json:"studentId" binding:"required,gt=0" example:"12"`
	Term       string `json:"term" binding:"required" example:"Term 1"`
	SchoolYear string `json:"schoolYear" binding:"required" example:"2026-2027"`
}
