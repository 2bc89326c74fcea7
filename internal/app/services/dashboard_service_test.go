package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/pkg/apperrors"
)

func TestGetCountsRejectsNonSuperusers(t *testing.T) {
	// The nil repository doubles as the proof that no count query runs for a
	// rejected caller: any repository access would panic.
	service := NewDashboardService(nil)

	roles := []models.RoleType{
		models.RoleSchoolAdmin,
		models.RoleTeacher,
		models.RoleParent,
		models.RoleType("SOMETHING_ELSE"),
	}

	for _, role := range roles {
		t.Run(string(role), func(t *testing.T) {
			counts, err := service.GetCounts(context.Background(), role, 1)
			assert.Nil(t, counts)
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		})
	}
}
