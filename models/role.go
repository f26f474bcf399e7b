package models

// Role is the closed set of account roles.
type Role string

const (
	RoleFarmer       Role = "farmer"
	RoleFieldOfficer Role = "field_officer"
	RoleHQAnalyst    Role = "hq_analyst"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleFieldOfficer, RoleHQAnalyst:
		return true
	}
	return false
}

// Capability names an action a role may perform.
type Capability string

const (
	CapManageAlerts       Capability = "alerts:manage"
	CapManageAdvisories   Capability = "advisories:manage"
	CapVerifyObservations Capability = "observations:verify"
	CapViewAnalytics      Capability = "analytics:view"
	CapListAccounts       Capability = "accounts:list"
)

// capabilities is the role -> allowed actions table. Role checks go through
// this table rather than ad-hoc string comparisons scattered across handlers.
var capabilities = map[Role]map[Capability]bool{
	RoleFarmer: {},
	RoleFieldOfficer: {
		CapManageAlerts:       true,
		CapVerifyObservations: true,
		CapListAccounts:       true,
	},
	RoleHQAnalyst: {
		CapManageAlerts:       true,
		CapManageAdvisories:   true,
		CapVerifyObservations: true,
		CapViewAnalytics:      true,
		CapListAccounts:       true,
	},
}

// Can reports whether the role is allowed to perform the action.
func (r Role) Can(action Capability) bool {
	return capabilities[r][action]
}
