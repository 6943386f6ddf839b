package auth

import (
	"context"
	"errors"
	"strings"

	autherrors "farmstaff/internal/auth/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error)
	GetMe(ctx context.Context, userID string) (MeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login user lookup failed", zap.Error(err))
		return TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", email))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	account, err := s.repo.FindStaffAccount(ctx, user.StaffID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenResponse{}, err
	}
	if !account.IsActive {
		return TokenResponse{}, autherrors.ErrAccountInactive
	}

	tokens, err := issueTokens(tokenClaims{
		UserID:   user.ID.String(),
		StaffID:  user.StaffID.String(),
		Role:     account.Role,
		IsActive: account.IsActive,
	})
	if err != nil {
		s.logger.Error("login token signing failed", zap.Error(err))
		return TokenResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("staff_id", user.StaffID.String()),
	)
	return tokens, nil
}

// Refresh re-reads the user and staff rows so a deactivated account
// cannot mint fresh access tokens from an old refresh token.
func (s *service) Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error) {
	claims, err := parseRefreshToken(req.RefreshToken)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, autherrors.ErrInvalidRefreshToken
		}
		return TokenResponse{}, err
	}

	account, err := s.repo.FindStaffAccount(ctx, user.StaffID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, autherrors.ErrInvalidRefreshToken
		}
		return TokenResponse{}, err
	}
	if !account.IsActive {
		return TokenResponse{}, autherrors.ErrAccountInactive
	}

	return issueTokens(tokenClaims{
		UserID:   user.ID.String(),
		StaffID:  user.StaffID.String(),
		Role:     account.Role,
		IsActive: account.IsActive,
	})
}

func (s *service) GetMe(ctx context.Context, userID string) (MeResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeResponse{}, autherrors.ErrUserNotFound
		}
		return MeResponse{}, err
	}

	account, err := s.repo.FindStaffAccount(ctx, user.StaffID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeResponse{}, autherrors.ErrUserNotFound
		}
		return MeResponse{}, err
	}

	return MeResponse{
		UserID:   user.ID.String(),
		StaffID:  user.StaffID.String(),
		Email:    user.Email,
		FullName: account.FullName,
		Role:     account.Role,
		IsActive: account.IsActive,
	}, nil
}

// HashPassword is shared with the invite acceptance flow, which creates
// the user row in its own transaction.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
