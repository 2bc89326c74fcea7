package dto

// DashboardCounts is the superuser dashboard payload: per-school entity counts.
// Every count is scoped to the authenticated superuser's school.
type DashboardCounts struct {
	TeachersCount  int64 `json:"teachers_count" example:"5"`
	ParentsCount   int64 `json:"parents_count" example:"3"`
	StudentsCount  int64 `json:"students_count" example:"20"`
	DocumentsCount int64 `json:"documents_count" example:"0"`
	ReportsCount   int64 `json:"reports_count" example:"2"`
}

// UnauthorisedResponse is the fixed dashboard authorization-failure body.
type UnauthorisedResponse struct {
	Error string `json:"error" example:"Unauthorised"`
}
