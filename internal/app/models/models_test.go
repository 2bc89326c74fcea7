package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleTypeValid(t *testing.T) {
	assert.True(t, RoleSuperuser.Valid())
	assert.True(t, RoleSchoolAdmin.Valid())
	assert.True(t, RoleTeacher.Valid())
	assert.True(t, RoleParent.Valid())
	assert.False(t, RoleType("HEADMASTER").Valid())
	assert.False(t, RoleType("").Valid())
}

func TestUserIsSuperuser(t *testing.T) {
	assert.True(t, (&User{Role: RoleSuperuser}).IsSuperuser())
	assert.False(t, (&User{Role: RoleSchoolAdmin}).IsSuperuser())
}
