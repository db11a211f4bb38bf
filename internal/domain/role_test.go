package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	role, err = ParseRole("user")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)

	_, err = ParseRole("superuser")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestRoleMapDefaultsToUser(t *testing.T) {
	roles := RoleMap{"admin@example.com": RoleAdmin}

	assert.Equal(t, RoleAdmin, roles.RoleFor("admin@example.com"))
	assert.Equal(t, RoleUser, roles.RoleFor("x@example.com"))
	assert.Equal(t, RoleUser, RoleMap(nil).RoleFor("anyone@example.com"))
}
