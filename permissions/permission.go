package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Role is the role carried in an access token.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleOwner      Role = "owner"
)

// Capability names one thing a role may do.
type Capability string

const (
	ManageListings   Capability = "manage_listings"
	ManageAccount    Capability = "manage_account"
	ViewStatistics   Capability = "view_statistics"
	ViewBookings     Capability = "view_bookings"
	ViewOwnDashboard Capability = "view_own_dashboard"
)

var grants = map[Role][]Capability{
	RoleSuperAdmin: {ManageListings, ManageAccount, ViewStatistics, ViewBookings},
	RoleAdmin:      {ManageListings, ManageAccount, ViewStatistics, ViewBookings},
	RoleOwner:      {ViewOwnDashboard},
}

func (r Role) Valid() bool {
	_, ok := grants[r]

	return ok
}

// Can reports whether r holds capability. Unknown roles hold nothing.
func (r Role) Can(capability Capability) bool {
	return slices.Contains(grants[r], capability)
}

// IsAdmin is true for back-office accounts.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type Permission struct {
	Capabilities []Capability `json:"capabilities"`
	Path         string       `json:"path"`
	Method       string       `json:"method"`
	Skip         bool         `json:"skip"`
}

// Allows is true when role holds any of the listed capabilities. An endpoint
// without capabilities only requires authentication.
func (p Permission) Allows(role Role) bool {
	if len(p.Capabilities) == 0 {
		return true
	}

	return slices.ContainsFunc(p.Capabilities, role.Can)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions matches a route pattern against the table. Subrouter roots
// resolve with a trailing slash, so it is ignored.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = trimSlash(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return trimSlash(rp.Path) == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func trimSlash(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}

	return path
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
