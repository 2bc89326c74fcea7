package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/app/models/dto"
	"github.com/skuldata/skuldata/internal/middleware"
	"github.com/skuldata/skuldata/internal/pkg/apperrors"
)

type stubDashboardService struct {
	counts *dto.DashboardCounts
	err    error
	calls  int
}

func (s *stubDashboardService) GetCounts(ctx context.Context, role models.RoleType, schoolID int64) (*dto.DashboardCounts, error) {
	s.calls++
	if role != models.RoleSuperuser {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.counts, s.err
}

func dashboardRequest(t *testing.T, service *stubDashboardService, role models.RoleType, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	controller := NewDashboardController(service)
	router.GET("/dashboard", func(c *gin.Context) {
		if authenticated {
			c.Set(middleware.ContextRole, string(role))
			c.Set(middleware.ContextSchoolID, int64(1))
		}
		controller.GetDashboard(c)
	})

	recorder := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/dashboard", nil)
	require.NoError(t, err)
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestGetDashboardReturnsCounts(t *testing.T) {
	service := &stubDashboardService{
		counts: &dto.DashboardCounts{
			TeachersCount:  5,
			ParentsCount:   3,
			StudentsCount:  20,
			DocumentsCount: 0,
			ReportsCount:   2,
		},
	}

	recorder := dashboardRequest(t, service, models.RoleSuperuser, true)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t,
		`{"teachers_count":5,"parents_count":3,"students_count":20,"documents_count":0,"reports_count":2}`,
		recorder.Body.String())
}

func TestGetDashboardForbiddenBody(t *testing.T) {
	service := &stubDashboardService{}

	recorder := dashboardRequest(t, service, models.RoleSchoolAdmin, true)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	// Clients key off this exact body, it must not use the standard envelope
	assert.Equal(t, `{"error":"Unauthorised"}`, recorder.Body.String())
}

func TestGetDashboardUnauthenticated(t *testing.T) {
	service := &stubDashboardService{}

	recorder := dashboardRequest(t, service, "", false)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, 0, service.calls)
}
