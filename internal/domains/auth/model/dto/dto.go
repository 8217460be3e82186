package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"staybook/infras/jwt"
	adminModel "staybook/internal/domains/admin/model"
	adminDto "staybook/internal/domains/admin/model/dto"
	homestayDto "staybook/internal/domains/homestay/model/dto"
	"staybook/permissions"
	"staybook/shared/constant"
	gModel "staybook/shared/model"
)

type RegisterRequest struct {
	Name     string `json:"name"           validate:"required,max=50"`
	Email    string `json:"email"          validate:"required,email,max=100"`
	Password string `json:"password"       validate:"required,min=8,max=72"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin superadmin"`
}

// NormalizedEmail is the form emails are stored and looked up in.
func NormalizedEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *RegisterRequest) ToModel(hashedPassword string, now time.Time) adminModel.Admin {
	role := permissions.RoleAdmin
	if r.Role != constant.Empty {
		role = permissions.Role(r.Role)
	}

	return adminModel.Admin{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Email:    NormalizedEmail(r.Email),
		Password: hashedPassword,
		Role:     string(role),
		Active:   true,
		Metadata: gModel.NewMetadata(constant.ContextGuest, now),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string                  `json:"access_token"`
	RefreshToken string                  `json:"refresh_token"`
	ExpiresIn    int64                   `json:"expires_in"`
	Admin        *adminDto.AdminResponse `json:"admin,omitempty"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

func (l *LoginResponse) WithAdmin(admin adminModel.Admin) {
	l.Admin = &adminDto.AdminResponse{}
	l.Admin.FromModel(admin)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password          string    `db:"password"            json:"password"            validate:"required,min=8"`
	PasswordChangedAt time.Time `db:"password_changed_at" json:"password_changed_at"`
}

type OwnerLoginRequest struct {
	HomestayID string `json:"homestay_id" validate:"required,max=50"`
	OwnerMob   string `json:"owner_mob"   validate:"required,max=15"`
}

type OwnerLoginResponse struct {
	AccessToken  string                       `json:"access_token"`
	RefreshToken string                       `json:"refresh_token"`
	ExpiresIn    int64                        `json:"expires_in"`
	Homestay     homestayDto.HomestayResponse `json:"homestay"`
}

func (o *OwnerLoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	o.AccessToken = tokenPair.AccessToken
	o.RefreshToken = tokenPair.RefreshToken
	o.ExpiresIn = tokenPair.ExpiresIn
}
