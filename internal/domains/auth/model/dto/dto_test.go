package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/infras/jwt"
	adminModel "staybook/internal/domains/admin/model"
	"staybook/internal/domains/auth/model/dto"
	"staybook/permissions"
	"staybook/shared/constant"
)

func TestRegisterRequest_ToModel(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		req      dto.RegisterRequest
		wantRole permissions.Role
	}{
		{
			name:     "role defaults to admin",
			req:      dto.RegisterRequest{Name: " Meera ", Email: " Meera@Example.COM", Password: "secret-pass"},
			wantRole: permissions.RoleAdmin,
		},
		{
			name:     "explicit superadmin",
			req:      dto.RegisterRequest{Name: "Root", Email: "root@example.com", Password: "secret-pass", Role: "superadmin"},
			wantRole: permissions.RoleSuperAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := tt.req.ToModel("hashed", now)

			assert.NotEmpty(t, admin.ID)
			assert.Equal(t, string(tt.wantRole), admin.Role)
			assert.Equal(t, dto.NormalizedEmail(tt.req.Email), admin.Email)
			assert.Equal(t, "hashed", admin.Password)
			assert.True(t, admin.Active)
			assert.Equal(t, constant.ContextGuest, admin.CreatedBy)
			assert.Equal(t, now, admin.CreatedAt)
		})
	}
}

func TestNormalizedEmail(t *testing.T) {
	assert.Equal(t, "meera@example.com", dto.NormalizedEmail("  Meera@Example.COM "))
}

func TestLoginResponse(t *testing.T) {
	tokenPair := &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600}

	var res dto.LoginResponse
	res.FromTokenPair(tokenPair)
	res.WithAdmin(adminModel.Admin{ID: "a1", Email: "meera@example.com", Password: "hash", Role: "admin"})

	assert.Equal(t, "access", res.AccessToken)
	assert.Equal(t, "refresh", res.RefreshToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	require.NotNil(t, res.Admin)
	assert.Equal(t, "a1", res.Admin.ID)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	var res dto.RefreshTokenResponse
	res.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, res.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, res.RefreshToken)
}
