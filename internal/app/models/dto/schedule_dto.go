package dto

// UpdateScheduleRequest toggles or re-times a persisted periodic task.
// Only the provided fields are applied.
type UpdateScheduleRequest struct {
	Enabled         *bool   `json:"enabled,omitempty"`
	IntervalSeconds *int64  `json:"intervalSeconds,omitempty" binding:"omitempty,gt=0"`
	CronExpr        *string `json:"cronExpr,omitempty"`
	ExpiresSeconds  *int64  `json:"expiresSeconds,omitempty" binding:"omitempty,gt=0"`
}
