package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"staybook/config"
	"staybook/infras/jwt"
	jwtMocks "staybook/infras/jwt/mocks"
	"staybook/infras/otel/mocks"
	"staybook/permissions"
	"staybook/shared/constant"
	"staybook/transport/http/middleware"
)

const apiKey = "internal-key"

func newRouter(t *testing.T, jwtService jwt.JWT) http.Handler {
	t.Helper()

	data := permissions.Get()
	require.NotNil(t, data)

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	auth := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), data, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-User", user)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Use(auth.APIKey, auth.Auth, auth.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Route("/homestays", func(r chi.Router) {
			r.Get("/", echo)
			r.Post("/", echo)
		})
		r.Route("/admin", func(r chi.Router) {
			r.Get("/dashboard", echo)
		})
		r.Get("/owner/dashboard", echo)
		r.Get("/bookings/property", echo)
	})

	return router
}

func TestAuthRole(t *testing.T) {
	adminClaims := &jwt.Claims{UserID: "admin-1", Email: "a@staybook.test", Role: string(permissions.RoleAdmin)}
	ownerClaims := &jwt.Claims{UserID: "HS001", Role: string(permissions.RoleOwner)}

	tests := []struct {
		name      string
		method    string
		path      string
		header    map[string]string
		cookie    string
		setupMock func(m *jwtMocks.MockJWT)
		wantCode  int
		wantUser  string
	}{
		{
			name:      "public catalog needs no token",
			method:    http.MethodGet,
			path:      "/v1/homestays",
			setupMock: func(*jwtMocks.MockJWT) {},
			wantCode:  http.StatusOK,
		},
		{
			name:      "missing token",
			method:    http.MethodGet,
			path:      "/v1/admin/dashboard",
			setupMock: func(*jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "malformed authorization header",
			method:    http.MethodGet,
			path:      "/v1/admin/dashboard",
			header:    map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			setupMock: func(*jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:   "admin bearer token",
			method: http.MethodGet,
			path:   "/v1/admin/dashboard",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer admin-token"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "admin-token", jwt.AccessToken).Return(adminClaims, nil)
			},
			wantCode: http.StatusOK,
			wantUser: "admin-1",
		},
		{
			name:   "admin cookie token",
			method: http.MethodPost,
			path:   "/v1/homestays",
			cookie: "cookie-token",
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "cookie-token", jwt.AccessToken).Return(adminClaims, nil)
			},
			wantCode: http.StatusOK,
			wantUser: "admin-1",
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			path:   "/v1/admin/dashboard",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "unknown role in claims",
			method: http.MethodGet,
			path:   "/v1/admin/dashboard",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer odd"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "odd", jwt.AccessToken).Return(&jwt.Claims{UserID: "x", Role: "guest"}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "owner cannot read admin statistics",
			method: http.MethodGet,
			path:   "/v1/admin/dashboard",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer owner-token"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "owner-token", jwt.AccessToken).Return(ownerClaims, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "owner dashboard",
			method: http.MethodGet,
			path:   "/v1/owner/dashboard",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer owner-token"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "owner-token", jwt.AccessToken).Return(ownerClaims, nil)
			},
			wantCode: http.StatusOK,
			wantUser: "HS001",
		},
		{
			name:   "admin cannot open owner dashboard",
			method: http.MethodGet,
			path:   "/v1/owner/dashboard",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer admin-token"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "admin-token", jwt.AccessToken).Return(adminClaims, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "property bookings open to owners",
			method: http.MethodGet,
			path:   "/v1/bookings/property",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer owner-token"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "owner-token", jwt.AccessToken).Return(ownerClaims, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "unlisted endpoint is denied",
			method: http.MethodGet,
			path:   "/v1/unknown",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer admin-token"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "admin-token", jwt.AccessToken).Return(adminClaims, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "internal api key skips token checks",
			method:    http.MethodGet,
			path:      "/v1/admin/dashboard",
			header:    map[string]string{constant.RequestHeaderAPIKey: apiKey},
			setupMock: func(*jwtMocks.MockJWT) {},
			wantCode:  http.StatusOK,
			wantUser:  constant.ContextSystem,
		},
		{
			name:      "wrong api key",
			method:    http.MethodGet,
			path:      "/v1/admin/dashboard",
			header:    map[string]string{constant.RequestHeaderAPIKey: "nope"},
			setupMock: func(*jwtMocks.MockJWT) {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)
			tt.setupMock(jwtService)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			if tt.cookie != constant.Empty {
				req.AddCookie(&http.Cookie{Name: constant.CookieAdminToken, Value: tt.cookie})
			}

			rec := httptest.NewRecorder()
			newRouter(t, jwtService).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantUser != constant.Empty {
				assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
			}
		})
	}
}
