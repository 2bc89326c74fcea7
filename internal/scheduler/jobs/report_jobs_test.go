package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/app/repositories"
)

type fakeSchoolLister struct {
	ids []int64
}

func (f *fakeSchoolLister) GetSchoolIDs(ctx context.Context) ([]int64, error) {
	return f.ids, nil
}

type fakeStudentGetter struct {
	students map[int64]*models.Student
}

func (f *fakeStudentGetter) GetStudentByID(ctx context.Context, schoolID, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return student, nil
}

type fakeReportStore struct {
	created  []*models.Report
	existing map[int64]bool // schoolID -> term-end report already present
	deleted  int64
	cutoff   time.Time
	nextID   int64
}

func (f *fakeReportStore) CreateReport(ctx context.Context, report *models.Report) (int64, error) {
	f.nextID++
	report.ID = f.nextID
	f.created = append(f.created, report)
	return f.nextID, nil
}

func (f *fakeReportStore) TermEndReportExists(ctx context.Context, schoolID int64, term, schoolYear string) (bool, error) {
	return f.existing[schoolID], nil
}

func (f *fakeReportStore) DeleteReportsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, nil
}

type fakeRequestStore struct {
	pending   []*models.ReportRequest
	claimFail map[int64]bool // requests already claimed by another worker
	completed map[int64]int64
	failed    map[int64]string
}

func newFakeRequestStore(pending ...*models.ReportRequest) *fakeRequestStore {
	return &fakeRequestStore{
		pending:   pending,
		claimFail: make(map[int64]bool),
		completed: make(map[int64]int64),
		failed:    make(map[int64]string),
	}
}

func (f *fakeRequestStore) FetchPending(ctx context.Context, limit int) ([]*models.ReportRequest, error) {
	return f.pending, nil
}

func (f *fakeRequestStore) MarkProcessing(ctx context.Context, id int64) error {
	if f.claimFail[id] {
		return repositories.ErrNotFound
	}
	return nil
}

func (f *fakeRequestStore) MarkCompleted(ctx context.Context, id, reportID int64) error {
	f.completed[id] = reportID
	return nil
}

func (f *fakeRequestStore) MarkFailed(ctx context.Context, id int64, lastError string) error {
	f.failed[id] = lastError
	return nil
}

type fakeSchoolCounter struct {
	counts map[int64]*repositories.DashboardCounts
}

func (f *fakeSchoolCounter) CountsBySchool(ctx context.Context, schoolID int64) (*repositories.DashboardCounts, error) {
	counts, ok := f.counts[schoolID]
	if !ok {
		return nil, fmt.Errorf("no counts for school %d", schoolID)
	}
	return counts, nil
}

func TestCleanupOldReportsUsesRetentionCutoff(t *testing.T) {
	reportStore := &fakeReportStore{deleted: 7}
	retention := 90 * 24 * time.Hour
	p := &Pipeline{reportRepo: reportStore, retention: retention}

	result, err := p.CleanupOldReports(context.Background())
	require.NoError(t, err)

	// Only reports older than now minus retention may be touched
	assert.WithinDuration(t, time.Now().Add(-retention), reportStore.cutoff, 2*time.Second)
	assert.Equal(t, map[string]int64{"deleted": int64(7)}, result)
}

func TestProcessPendingReportRequestsOutcomes(t *testing.T) {
	student := &models.Student{
		ID:          10,
		SchoolID:    1,
		Name:        "Amina Odhiambo",
		AdmissionNo: "RA-0042",
		ClassName:   "Grade 6",
	}

	okReq := &models.ReportRequest{ID: 1, SchoolID: 1, StudentID: 10, Term: "Term 1", SchoolYear: "2026"}
	missingStudentReq := &models.ReportRequest{ID: 2, SchoolID: 1, StudentID: 99, Term: "Term 1", SchoolYear: "2026"}

	requestStore := newFakeRequestStore(okReq, missingStudentReq)
	reportStore := &fakeReportStore{}
	p := &Pipeline{
		studentRepo: &fakeStudentGetter{students: map[int64]*models.Student{10: student}},
		reportRepo:  reportStore,
		requestRepo: requestStore,
	}

	result, err := p.ProcessPendingReportRequests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"processed": 1, "failed": 1}, result)

	// The successful request links to its generated report
	require.Len(t, reportStore.created, 1)
	report := reportStore.created[0]
	assert.Equal(t, models.ReportTypeStudentTerm, report.ReportType)
	assert.Equal(t, models.ReportStatusGenerated, report.Status)
	assert.Equal(t, int64(1), report.SchoolID)
	assert.Equal(t, report.ID, requestStore.completed[okReq.ID])

	var content map[string]interface{}
	require.NoError(t, json.Unmarshal(report.Content, &content))
	assert.Equal(t, "Amina Odhiambo", content["studentName"])
	assert.Equal(t, "Term 1", content["term"])

	// The missing-student request is marked FAILED with the cause recorded
	assert.Contains(t, requestStore.failed[missingStudentReq.ID], "student lookup failed")
	assert.NotContains(t, requestStore.completed, missingStudentReq.ID)
}

func TestProcessPendingSkipsClaimedRequests(t *testing.T) {
	claimed := &models.ReportRequest{ID: 5, SchoolID: 1, StudentID: 10}
	requestStore := newFakeRequestStore(claimed)
	requestStore.claimFail[claimed.ID] = true

	reportStore := &fakeReportStore{}
	p := &Pipeline{
		studentRepo: &fakeStudentGetter{},
		reportRepo:  reportStore,
		requestRepo: requestStore,
	}

	result, err := p.ProcessPendingReportRequests(context.Background())
	require.NoError(t, err)

	// A request claimed elsewhere counts as neither processed nor failed
	assert.Equal(t, map[string]int{"processed": 0, "failed": 0}, result)
	assert.Empty(t, reportStore.created)
	assert.Empty(t, requestStore.completed)
	assert.Empty(t, requestStore.failed)
}

func TestGenerateTermEndReportsSkipsExisting(t *testing.T) {
	reportStore := &fakeReportStore{existing: map[int64]bool{2: true}}
	p := &Pipeline{
		schoolRepo: &fakeSchoolLister{ids: []int64{1, 2}},
		reportRepo: reportStore,
		dashboardRepo: &fakeSchoolCounter{counts: map[int64]*repositories.DashboardCounts{
			1: {Teachers: 5, Parents: 3, Students: 20, Documents: 0, Reports: 2},
		}},
	}

	result, err := p.GenerateTermEndReports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"generated": 1, "skipped": 1}, result)

	require.Len(t, reportStore.created, 1)
	report := reportStore.created[0]
	assert.Equal(t, int64(1), report.SchoolID)
	assert.Equal(t, models.ReportTypeTermEnd, report.ReportType)

	var content map[string]interface{}
	require.NoError(t, json.Unmarshal(report.Content, &content))
	assert.Equal(t, float64(20), content["studentsCount"])
}
