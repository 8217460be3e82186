package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/permissions"
)

func TestRole_Can(t *testing.T) {
	tests := []struct {
		role       permissions.Role
		capability permissions.Capability
		want       bool
	}{
		{permissions.RoleSuperAdmin, permissions.ManageListings, true},
		{permissions.RoleSuperAdmin, permissions.ViewStatistics, true},
		{permissions.RoleAdmin, permissions.ManageListings, true},
		{permissions.RoleAdmin, permissions.ViewBookings, true},
		{permissions.RoleAdmin, permissions.ViewOwnDashboard, false},
		{permissions.RoleAdmin, permissions.ManageAccount, true},
		{permissions.RoleSuperAdmin, permissions.ManageAccount, true},
		{permissions.RoleOwner, permissions.ManageAccount, false},
		{permissions.RoleOwner, permissions.ViewOwnDashboard, true},
		{permissions.RoleOwner, permissions.ManageListings, false},
		{permissions.RoleOwner, permissions.ViewStatistics, false},
		{permissions.Role("guest"), permissions.ViewBookings, false},
		{permissions.Role(""), permissions.ViewOwnDashboard, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.capability), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Can(tt.capability))
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	property := permissions.Permission{
		Capabilities: []permissions.Capability{permissions.ViewBookings, permissions.ViewOwnDashboard},
	}

	assert.True(t, property.Allows(permissions.RoleAdmin))
	assert.True(t, property.Allows(permissions.RoleOwner))
	assert.False(t, property.Allows(permissions.Role("guest")))
	assert.True(t, permissions.Permission{}.Allows(permissions.RoleOwner))
}

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		method string
		path   string
		skip   bool
		owner  bool
		admin  bool
	}{
		{name: "public catalog", method: http.MethodGet, path: "/v1/homestays", skip: true},
		{name: "public booking", method: http.MethodPost, path: "/v1/bookings", skip: true},
		{name: "listing management", method: http.MethodDelete, path: "/v1/homestays/{homestay_id}", admin: true},
		{name: "admin statistics", method: http.MethodGet, path: "/v1/admin/dashboard", admin: true},
		{name: "owner dashboard", method: http.MethodGet, path: "/v1/owner/dashboard", owner: true},
		{name: "own password change", method: http.MethodPost, path: "/v1/auth/change-password", admin: true},
		{name: "property bookings", method: http.MethodGet, path: "/v1/bookings/property", owner: true, admin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.path, permission.Path)
			assert.Equal(t, tt.skip, permission.Skip)

			if tt.skip {
				return
			}

			assert.Equal(t, tt.owner, permission.Allows(permissions.RoleOwner))
			assert.Equal(t, tt.admin, permission.Allows(permissions.RoleAdmin))
		})
	}

	assert.Empty(t, data.FindPermissions("/v1/unknown", http.MethodGet).Path)
	assert.Equal(t, "/v1/homestays", data.FindPermissions("/v1/homestays/", http.MethodPost).Path)
}
