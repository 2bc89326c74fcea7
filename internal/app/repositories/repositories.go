package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skuldata/skuldata/internal/pkg/dberrors"
)

// ErrNotFound is the shared not-found error for all repositories
var ErrNotFound = errors.New("resource not found")

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func isDuplicateKeyError(err error) bool {
	return dberrors.IsDuplicateKeyError(err)
}

// Repositories holds all the repository instances
type Repositories struct {
	SchoolRepository        *SchoolRepository
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	TeacherRepository       *TeacherRepository
	ParentRepository        *ParentRepository
	StudentRepository       *StudentRepository
	DocumentRepository      *DocumentRepository
	ReportRepository        *ReportRepository
	ReportRequestRepository *ReportRequestRepository
	PeriodicTaskRepository  *PeriodicTaskRepository
	DashboardRepository     *DashboardRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		SchoolRepository:        NewSchoolRepository(db),
		UserRepository:          NewUserRepository(db),
		TokenRepository:         NewTokenRepository(db),
		TeacherRepository:       NewTeacherRepository(db),
		ParentRepository:        NewParentRepository(db),
		StudentRepository:       NewStudentRepository(db),
		DocumentRepository:      NewDocumentRepository(db),
		ReportRepository:        NewReportRepository(db),
		ReportRequestRepository: NewReportRequestRepository(db),
		PeriodicTaskRepository:  NewPeriodicTaskRepository(db),
		DashboardRepository:     NewDashboardRepository(db),
	}
}
