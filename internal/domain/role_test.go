package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleAdmin, NormalizeRole("Admin"))
	assert.Equal(t, RoleAdmin, NormalizeRole("ADMIN"))
	assert.Equal(t, RoleStudent, NormalizeRole("student"))
	assert.Equal(t, RoleStudent, NormalizeRole("user"))
	assert.Equal(t, RoleStudent, NormalizeRole("supervisor"))
	assert.Equal(t, RoleUnknown, NormalizeRole(""))
}

func TestHomeRoute(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", HomeRoute(RoleAdmin))
	assert.Equal(t, "/servicios", HomeRoute(RoleStudent))
	assert.Equal(t, "/servicios", HomeRoute(RoleUnknown))
}
