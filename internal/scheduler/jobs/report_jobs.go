package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/app/repositories"
	"github.com/skuldata/skuldata/internal/pkg/logger"
)

// pendingBatchSize bounds how many PENDING requests one cycle drains
const pendingBatchSize = 100

// The pipeline depends on narrow views of the repositories it touches
type schoolLister interface {
	GetSchoolIDs(ctx context.Context) ([]int64, error)
}

type studentGetter interface {
	GetStudentByID(ctx context.Context, schoolID, id int64) (*models.Student, error)
}

type reportStore interface {
	CreateReport(ctx context.Context, report *models.Report) (int64, error)
	TermEndReportExists(ctx context.Context, schoolID int64, term, schoolYear string) (bool, error)
	DeleteReportsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type requestStore interface {
	FetchPending(ctx context.Context, limit int) ([]*models.ReportRequest, error)
	MarkProcessing(ctx context.Context, id int64) error
	MarkCompleted(ctx context.Context, id, reportID int64) error
	MarkFailed(ctx context.Context, id int64, lastError string) error
}

type schoolCounter interface {
	CountsBySchool(ctx context.Context, schoolID int64) (*repositories.DashboardCounts, error)
}

// Pipeline holds the report-generation job handlers. One instance serves
// all three scheduled jobs.
type Pipeline struct {
	schoolRepo    schoolLister
	studentRepo   studentGetter
	reportRepo    reportStore
	requestRepo   requestStore
	dashboardRepo schoolCounter
	retention     time.Duration
}

// NewPipeline creates the report pipeline with the given retention window
// for generated reports.
func NewPipeline(repos *repositories.Repositories, retentionDays int) *Pipeline {
	return &Pipeline{
		schoolRepo:    repos.SchoolRepository,
		studentRepo:   repos.StudentRepository,
		reportRepo:    repos.ReportRepository,
		requestRepo:   repos.ReportRequestRepository,
		dashboardRepo: repos.DashboardRepository,
		retention:     time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// RegisterAll wires the pipeline's handlers into the registry
func (p *Pipeline) RegisterAll(reg *Registry) {
	reg.Register(JobProcessPendingReportRequests, p.ProcessPendingReportRequests)
	reg.Register(JobGenerateTermEndReports, p.GenerateTermEndReports)
	reg.Register(JobCleanupOldReports, p.CleanupOldReports)
}

// studentReportContent is the jsonb payload of a STUDENT_TERM report
type studentReportContent struct {
	StudentID   int64  `json:"studentId"`
	StudentName string `json:"studentName"`
	AdmissionNo string `json:"admissionNo"`
	ClassName   string `json:"className"`
	Term        string `json:"term"`
	SchoolYear  string `json:"schoolYear"`
	GeneratedAt string `json:"generatedAt"`
}

// termEndReportContent is the jsonb payload of a TERM_END report
type termEndReportContent struct {
	Term           string `json:"term"`
	SchoolYear     string `json:"schoolYear"`
	TeachersCount  int64  `json:"teachersCount"`
	ParentsCount   int64  `json:"parentsCount"`
	StudentsCount  int64  `json:"studentsCount"`
	DocumentsCount int64  `json:"documentsCount"`
	GeneratedAt    string `json:"generatedAt"`
}

// ProcessPendingReportRequests drains PENDING report requests: each one
// becomes a GENERATED student term report, or is marked FAILED with the
// error recorded on the row.
func (p *Pipeline) ProcessPendingReportRequests(ctx context.Context) (interface{}, error) {
	pending, err := p.requestRepo.FetchPending(ctx, pendingBatchSize)
	if err != nil {
		return nil, err
	}

	processed, failed := 0, 0
	for _, req := range pending {
		if err := ctx.Err(); err != nil {
			break
		}

		if err := p.requestRepo.MarkProcessing(ctx, req.ID); err != nil {
			// Already claimed or removed; move on
			continue
		}

		if err := p.processRequest(ctx, req); err != nil {
			failed++
			logger.Warn().Err(err).Int64("requestID", req.ID).Msg("Report request failed")
			if markErr := p.requestRepo.MarkFailed(ctx, req.ID, err.Error()); markErr != nil {
				logger.Error().Err(markErr).Int64("requestID", req.ID).Msg("Failed to record request failure")
			}
			continue
		}
		processed++
	}

	logger.Info().Int("processed", processed).Int("failed", failed).Msg("Pending report requests drained")
	return map[string]int{"processed": processed, "failed": failed}, nil
}

func (p *Pipeline) processRequest(ctx context.Context, req *models.ReportRequest) error {
	student, err := p.studentRepo.GetStudentByID(ctx, req.SchoolID, req.StudentID)
	if err != nil {
		return fmt.Errorf("student lookup failed: %w", err)
	}

	content, err := json.Marshal(studentReportContent{
		StudentID:   student.ID,
		StudentName: student.Name,
		AdmissionNo: student.AdmissionNo,
		ClassName:   student.ClassName,
		Term:        req.Term,
		SchoolYear:  req.SchoolYear,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to encode report content: %w", err)
	}

	report := &models.Report{
		SchoolID:   req.SchoolID,
		Title:      fmt.Sprintf("%s report for %s (%s)", req.Term, student.Name, req.SchoolYear),
		ReportType: models.ReportTypeStudentTerm,
		Term:       req.Term,
		SchoolYear: req.SchoolYear,
		Status:     models.ReportStatusGenerated,
		Content:    content,
	}

	reportID, err := p.reportRepo.CreateReport(ctx, report)
	if err != nil {
		return fmt.Errorf("report creation failed: %w", err)
	}

	return p.requestRepo.MarkCompleted(ctx, req.ID, reportID)
}

// GenerateTermEndReports fans out one term-end report per school for the
// current term. Already-generated combinations are skipped, so re-runs in
// the same term are no-ops.
func (p *Pipeline) GenerateTermEndReports(ctx context.Context) (interface{}, error) {
	term, schoolYear := CurrentTerm(time.Now())

	schoolIDs, err := p.schoolRepo.GetSchoolIDs(ctx)
	if err != nil {
		return nil, err
	}

	generated, skipped := 0, 0
	for _, schoolID := range schoolIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		exists, err := p.reportRepo.TermEndReportExists(ctx, schoolID, term, schoolYear)
		if err != nil {
			return nil, err
		}
		if exists {
			skipped++
			continue
		}

		counts, err := p.dashboardRepo.CountsBySchool(ctx, schoolID)
		if err != nil {
			return nil, err
		}

		content, err := json.Marshal(termEndReportContent{
			Term:           term,
			SchoolYear:     schoolYear,
			TeachersCount:  counts.Teachers,
			ParentsCount:   counts.Parents,
			StudentsCount:  counts.Students,
			DocumentsCount: counts.Documents,
			GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode term-end content: %w", err)
		}

		report := &models.Report{
			SchoolID:   schoolID,
			Title:      fmt.Sprintf("%s %s term-end report", schoolYear, term),
			ReportType: models.ReportTypeTermEnd,
			Term:       term,
			SchoolYear: schoolYear,
			Status:     models.ReportStatusGenerated,
			Content:    content,
		}

		if _, err := p.reportRepo.CreateReport(ctx, report); err != nil {
			return nil, err
		}
		generated++
	}

	logger.Info().Str("term", term).Str("schoolYear", schoolYear).
		Int("generated", generated).Int("skipped", skipped).
		Msg("Term-end reports generated")
	return map[string]int{"generated": generated, "skipped": skipped}, nil
}

// CleanupOldReports deletes reports generated before the retention window
func (p *Pipeline) CleanupOldReports(ctx context.Context) (interface{}, error) {
	cutoff := time.Now().Add(-p.retention)

	deleted, err := p.reportRepo.DeleteReportsOlderThan(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Old reports cleaned up")
	return map[string]int64{"deleted": deleted}, nil
}

// CurrentTerm maps a point in time to the school term and year. Terms run
// January-April, May-August and September-December.
func CurrentTerm(now time.Time) (term, schoolYear string) {
	switch {
	case now.Month() <= time.April:
		term = "Term 1"
	case now.Month() <= time.August:
		term = "Term 2"
	default:
		term = "Term 3"
	}
	return term, fmt.Sprintf("%d", now.Year())
}
