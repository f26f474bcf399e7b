package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleFarmer.Valid())
	assert.True(t, RoleFieldOfficer.Valid())
	assert.True(t, RoleHQAnalyst.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleCapabilities(t *testing.T) {
	// Farmers hold no elevated capabilities.
	assert.False(t, RoleFarmer.Can(CapManageAlerts))
	assert.False(t, RoleFarmer.Can(CapViewAnalytics))

	// Field officers manage alerts and verify observations but cannot
	// publish advisories or see analytics.
	assert.True(t, RoleFieldOfficer.Can(CapManageAlerts))
	assert.True(t, RoleFieldOfficer.Can(CapVerifyObservations))
	assert.True(t, RoleFieldOfficer.Can(CapListAccounts))
	assert.False(t, RoleFieldOfficer.Can(CapManageAdvisories))
	assert.False(t, RoleFieldOfficer.Can(CapViewAnalytics))

	// HQ analysts hold everything.
	for _, cap := range []Capability{
		CapManageAlerts, CapManageAdvisories, CapVerifyObservations,
		CapViewAnalytics, CapListAccounts,
	} {
		assert.True(t, RoleHQAnalyst.Can(cap), string(cap))
	}

	// Unknown roles hold nothing.
	assert.False(t, Role("admin").Can(CapListAccounts))
}
