package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/skuldata/skuldata/internal/pkg/apperrors"
)

func runErrorHandler(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	HandleAPIError(c, err)
	return recorder
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"report not found", apperrors.ErrReportNotFound, http.StatusNotFound},
		{"schedule not found", apperrors.ErrScheduleNotFound, http.StatusNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token revoked", apperrors.ErrTokenRevoked, http.StatusUnauthorized},
		{"invalid trigger", apperrors.ErrInvalidTrigger, http.StatusBadRequest},
		{"bad request", apperrors.ErrBadRequest, http.StatusBadRequest},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"duplicate admission number", apperrors.ErrAdmissionNoAlreadyTaken, http.StatusConflict},
		{"unknown error", errors.New("something broke"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := runErrorHandler(tt.err)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	// Wrapped sentinels map the same as bare ones
	err := apperrors.NewCustomError(apperrors.ErrInvalidTrigger, "cronExpr is not a valid cron expression")
	recorder := runErrorHandler(err)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cronExpr is not a valid cron expression")
}

func TestHandleAPIErrorUsesCustomMessage(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrStudentNotFound, "Student 42 not found in this school")
	recorder := runErrorHandler(err)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Student 42 not found in this school")
}
