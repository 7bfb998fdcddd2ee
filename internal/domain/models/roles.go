// internal/domain/models/roles.go
package models

// User roles. Registration always starts at RoleUnassigned; promotion to any
// other role is a coordinator action.
const (
	RoleUnassigned   = "unassigned"
	RoleVehicleOwner = "vehicle_owner"
	RoleRequester    = "requester"
	RoleCoordinator  = "coordinator"
)

// DefaultRole is the role given to a newly registered user.
const DefaultRole = RoleUnassigned

var roles = []string{RoleUnassigned, RoleVehicleOwner, RoleRequester, RoleCoordinator}

// ValidRole reports whether s is one of the declared roles.
func ValidRole(s string) bool {
	for _, r := range roles {
		if s == r {
			return true
		}
	}
	return false
}

// RoleList returns the declared roles in a stable order, for validation and
// UI option lists alike.
func RoleList() []string {
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}

// Affiliation types for a user's declared affiliation.
const (
	AffiliationOrganization = "on_behalf_of_organization"
	AffiliationSelf         = "self"
)

var affiliationTypes = []string{AffiliationOrganization, AffiliationSelf}

// ValidAffiliationType reports whether s is a declared affiliation type.
func ValidAffiliationType(s string) bool {
	for _, a := range affiliationTypes {
		if s == a {
			return true
		}
	}
	return false
}

// AffiliationTypeList returns the declared affiliation types.
func AffiliationTypeList() []string {
	out := make([]string, len(affiliationTypes))
	copy(out, affiliationTypes)
	return out
}
