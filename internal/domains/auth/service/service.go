package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"staybook/infras/jwt"
	"staybook/infras/otel"
	adminModel "staybook/internal/domains/admin/model"
	adminRepo "staybook/internal/domains/admin/repository"
	"staybook/internal/domains/auth/model/dto"
	homestayModel "staybook/internal/domains/homestay/model"
	homestayRepo "staybook/internal/domains/homestay/repository"
	"staybook/permissions"
	"staybook/shared"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	"staybook/shared/password"
	gRepo "staybook/shared/repository"
	"staybook/shared/timezone"
)

const (
	errEmailRegistered    = "email already registered"
	errInvalidCredentials = "invalid email or password"
	errInvalidOwnerLogin  = "invalid homestay id or mobile number"
	errAccountDeactivated = "account is deactivated"
	errInvalidRefresh     = "invalid refresh token"
	errWrongPassword      = "current password is incorrect"
	errAdminNotFound      = "admin not found"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.LoginResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) error
	OwnerLogin(ctx context.Context, req dto.OwnerLoginRequest) (dto.OwnerLoginResponse, error)
}

type serviceImpl struct {
	adminRepo    adminRepo.Admin
	homestayRepo homestayRepo.Homestay
	jwtService   jwt.JWT
	clock        timezone.Clock
	otel         otel.Otel
}

func New(adminRepo adminRepo.Admin, homestayRepo homestayRepo.Homestay, jwt jwt.JWT, clock timezone.Clock, otel otel.Otel) Auth {
	return &serviceImpl{
		adminRepo:    adminRepo,
		homestayRepo: homestayRepo,
		jwtService:   jwt,
		clock:        clock,
		otel:         otel,
	}
}

func byEmail(email string) gDto.FilterGroup {
	return shared.FilterByField(adminModel.FieldEmail, dto.NormalizedEmail(email), adminModel.TableName)
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.adminRepo.Exist(ctx, byEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if admin exists")

		return res, fmt.Errorf("failed to check if admin exists: %w", err)
	}

	if exists {
		return res, failure.Conflict(errEmailRegistered) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := req.ToModel(hashedPassword, s.clock.Now())

	if err = s.adminRepo.Insert(ctx, admin); err != nil {
		if errors.Is(err, gRepo.ErrDuplicate) {
			return res, failure.Conflict(errEmailRegistered) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create admin")

		return res, fmt.Errorf("failed to create admin: %w", err)
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, admin.ID, admin.Email, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.WithAdmin(admin)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := byEmail(req.Email)

	admin, err := s.adminRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized(errInvalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, admin.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(errInvalidCredentials) // nolint:wrapcheck
	}

	if !admin.Active {
		return res, failure.Forbidden(errAccountDeactivated) // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, admin.ID, admin.Email, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := s.clock.Now()
	lastLogin := dto.UpdateLastLoginRequest{LastLogin: now}

	if err := s.adminRepo.Update(ctx, shared.TransformFields(lastLogin, admin.ID), filter); err != nil {
		log.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to update last login")
	} else {
		admin.LastLogin = &now
	}

	res.FromTokenPair(tokenPair)
	res.WithAdmin(admin)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized(errInvalidRefresh) // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(adminID, adminModel.FieldID, adminModel.TableName)

	admin, err := s.adminRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return failure.NotFound(errAdminNotFound) // nolint:wrapcheck
	}

	if err = password.Verify(req.CurrentPassword, admin.Password); err != nil {
		return failure.BadRequestFromString(errWrongPassword) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	update := dto.UpdatePasswordRequest{Password: hashedPassword, PasswordChangedAt: s.clock.Now()}

	if err = s.adminRepo.Update(ctx, shared.TransformFields(update, admin.ID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// OwnerLogin authenticates a homestay owner by the listing key and the
// registered mobile number. The token subject is the homestay key.
func (s *serviceImpl) OwnerLogin(ctx context.Context, req dto.OwnerLoginRequest) (res dto.OwnerLoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.OwnerLogin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	homestay, err := s.homestayRepo.Get(ctx, shared.FilterByField(homestayModel.FieldHomestayID, req.HomestayID, homestayModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get homestay")

		return res, fmt.Errorf("failed to get homestay: %w", err)
	}

	if homestay.ID == constant.Empty || homestay.OwnerMob != req.OwnerMob {
		log.Warn().Str("homestay_id", req.HomestayID).Msg("owner login with invalid credentials")

		return res, failure.Unauthorized(errInvalidOwnerLogin) // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, homestay.HomestayID, constant.Empty, string(permissions.RoleOwner))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.Homestay.FromModel(homestay)

	return res, nil
}
