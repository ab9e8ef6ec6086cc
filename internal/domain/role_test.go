package domain_test

import (
	"testing"

	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		input string
		want  domain.Role
		ok    bool
	}{
		{"employee", domain.RoleEmployee, true},
		{"hr", domain.RoleHR, true},
		{"admin", domain.RoleAdmin, true},
		{"", "", false},
		{"HR", "", false},
		{"superadmin", "", false},
	}

	for _, tc := range cases {
		got, ok := domain.ParseRole(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestRoleCan(t *testing.T) {
	assert.True(t, domain.RoleAdmin.Can(domain.RoleHR))
	assert.True(t, domain.RoleAdmin.Can(domain.RoleEmployee))
	assert.True(t, domain.RoleHR.Can(domain.RoleEmployee))
	assert.True(t, domain.RoleEmployee.Can(domain.RoleEmployee))

	assert.False(t, domain.RoleEmployee.Can(domain.RoleHR))
	assert.False(t, domain.RoleHR.Can(domain.RoleAdmin))

	// Unknown roles never pass, in either position.
	assert.False(t, domain.Role("guest").Can(domain.RoleEmployee))
	assert.False(t, domain.RoleAdmin.Can(domain.Role("guest")))
}

func TestIdentityIsElevated(t *testing.T) {
	assert.False(t, domain.Identity{Role: domain.RoleEmployee}.IsElevated())
	assert.True(t, domain.Identity{Role: domain.RoleHR}.IsElevated())
	assert.True(t, domain.Identity{Role: domain.RoleAdmin}.IsElevated())
	assert.False(t, domain.Identity{Role: domain.Role("")}.IsElevated())
}
