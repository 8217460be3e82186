package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"staybook/infras/jwt"
	jwtMocks "staybook/infras/jwt/mocks"
	"staybook/infras/otel/mocks"
	adminMocks "staybook/internal/domains/admin/mocks"
	adminModel "staybook/internal/domains/admin/model"
	"staybook/internal/domains/auth/model/dto"
	"staybook/internal/domains/auth/service"
	homestayMocks "staybook/internal/domains/homestay/mocks"
	homestayModel "staybook/internal/domains/homestay/model"
	"staybook/permissions"
	"staybook/shared/failure"
	"staybook/shared/password"
	gRepo "staybook/shared/repository"
	"staybook/shared/timezone"
)

var now = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

var tokenPair = &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", ExpiresIn: 28800}

type fixture struct {
	adminRepo    *adminMocks.MockAdmin
	homestayRepo *homestayMocks.MockHomestay
	jwt          *jwtMocks.MockJWT
	svc          service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		adminRepo:    adminMocks.NewMockAdmin(ctrl),
		homestayRepo: homestayMocks.NewMockHomestay(ctrl),
		jwt:          jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.adminRepo, f.homestayRepo, f.jwt, timezone.FixedClock(now), mocks.NewOtel())

	return f
}

func activeAdmin(t *testing.T) adminModel.Admin {
	t.Helper()

	hash, err := password.Hash("password123")
	require.NoError(t, err)

	return adminModel.Admin{
		ID:       "admin-1",
		Name:     "Meera",
		Email:    "meera@example.com",
		Password: hash,
		Role:     string(permissions.RoleAdmin),
		Active:   true,
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Name: "Meera", Email: "Meera@Example.com", Password: "password123"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful registration",
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.adminRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, admin adminModel.Admin) error {
					assert.Equal(t, "meera@example.com", admin.Email)
					assert.Equal(t, string(permissions.RoleAdmin), admin.Role)
					assert.NoError(t, password.Verify("password123", admin.Password))

					return nil
				})
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), "meera@example.com", "admin").Return(tokenPair, nil)
			},
		},
		{
			name: "email already registered",
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "duplicate on insert",
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.adminRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(gRepo.ErrDuplicate)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "exist check error",
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Register(context.Background(), req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			require.NotNil(t, res.Admin)
			assert.Equal(t, "meera@example.com", res.Admin.Email)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	admin := activeAdmin(t)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "meera@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), admin.ID, admin.Email, admin.Role).Return(tokenPair, nil)
				f.adminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, now, fields[adminModel.FieldLastLogin])

						return nil
					})
			},
		},
		{
			name: "last login update failure does not block login",
			req:  dto.LoginRequest{Email: "meera@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair, nil)
				f.adminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "meera@example.com", Password: "wrong-password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "meera@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				inactive := admin
				inactive.Active = false

				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Email: "meera@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
			require.NotNil(t, res.Admin)
			assert.Equal(t, admin.ID, res.Admin.ID)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "valid refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh-token").Return(tokenPair, nil)
			},
		},
		{
			name: "invalid refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh-token").Return(nil, jwt.ErrInvalidToken)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	admin := activeAdmin(t)

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "password changed",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password456"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
				f.adminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						hash, ok := fields[adminModel.FieldPassword].(string)
						require.True(t, ok)
						assert.NoError(t, password.Verify("new-password456", hash))
						assert.Equal(t, now, fields[adminModel.FieldPasswordChangedAt])

						return nil
					})
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password456"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "admin not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password456"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "update error",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password456"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
				f.adminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ChangePassword(context.Background(), tt.req, admin.ID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAuthService_OwnerLogin(t *testing.T) {
	homestay := homestayModel.Homestay{ID: "uuid-1", HomestayID: "HS001", Name: "Hillside", OwnerMob: "9876543210"}

	tests := []struct {
		name      string
		req       dto.OwnerLoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "matching mobile number",
			req:  dto.OwnerLoginRequest{HomestayID: "HS001", OwnerMob: "9876543210"},
			setupMock: func(f fixture) {
				f.homestayRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(homestay, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "HS001", "", string(permissions.RoleOwner)).Return(tokenPair, nil)
			},
		},
		{
			name: "mobile number mismatch",
			req:  dto.OwnerLoginRequest{HomestayID: "HS001", OwnerMob: "1111111111"},
			setupMock: func(f fixture) {
				f.homestayRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(homestay, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "unknown homestay",
			req:  dto.OwnerLoginRequest{HomestayID: "HS404", OwnerMob: "9876543210"},
			setupMock: func(f fixture) {
				f.homestayRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(homestayModel.Homestay{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "token generation error",
			req:  dto.OwnerLoginRequest{HomestayID: "HS001", OwnerMob: "9876543210"},
			setupMock: func(f fixture) {
				f.homestayRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(homestay, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("signing error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.OwnerLogin(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "Hillside", res.Homestay.Name)
		})
	}
}
