package services

import (
	"github.com/skuldata/skuldata/internal/app/repositories"
	"github.com/skuldata/skuldata/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService      AuthService
	DashboardService DashboardService
	TeacherService   TeacherService
	ParentService    ParentService
	StudentService   StudentService
	DocumentService  DocumentService
	ReportService    ReportService
	ScheduleService  ScheduleService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService:      NewAuthService(repos.SchoolRepository, repos.UserRepository, repos.TokenRepository, jwtService),
		DashboardService: NewDashboardService(repos.DashboardRepository),
		TeacherService:   NewTeacherService(repos.TeacherRepository),
		ParentService:    NewParentService(repos.ParentRepository),
		StudentService:   NewStudentService(repos.StudentRepository, repos.ParentRepository),
		DocumentService:  NewDocumentService(repos.DocumentRepository),
		ReportService:    NewReportService(repos.ReportRepository, repos.ReportRequestRepository, repos.StudentRepository),
		ScheduleService:  NewScheduleService(repos.PeriodicTaskRepository),
	}
}
