package models

// RoleType defines the user role type
type RoleType string

const (
	RoleSuperuser   RoleType = "SUPERUSER"
	RoleSchoolAdmin RoleType = "SCHOOL_ADMIN"
	RoleTeacher     RoleType = "TEACHER"
	RoleParent      RoleType = "PARENT"
)

// Valid reports whether the role is one of the known role types.
func (r RoleType) Valid() bool {
	switch r {
	case RoleSuperuser, RoleSchoolAdmin, RoleTeacher, RoleParent:
		return true
	}
	return false
}

// ReportType classifies a generated report.
type ReportType string

const (
	ReportTypeTermEnd     ReportType = "TERM_END"
	ReportTypeStudentTerm ReportType = "STUDENT_TERM"
	ReportTypeCustom      ReportType = "CUSTOM"
)

// ReportStatus is the lifecycle state of a generated report.
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "DRAFT"
	ReportStatusGenerated ReportStatus = "GENERATED"
	ReportStatusPublished ReportStatus = "PUBLISHED"
	ReportStatusArchived  ReportStatus = "ARCHIVED"
)

// RequestStatus is the lifecycle state of a report request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "PENDING"
	RequestStatusProcessing RequestStatus = "PROCESSING"
	RequestStatusCompleted  RequestStatus = "COMPLETED"
	RequestStatusFailed     RequestStatus = "FAILED"
)

// TriggerType selects how a periodic task fires.
type TriggerType string

const (
	TriggerInterval TriggerType = "interval"
	TriggerCron     TriggerType = "cron"
)
