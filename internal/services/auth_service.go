package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"estatehub_backend/internal/auth"
	"estatehub_backend/internal/config"
	"estatehub_backend/internal/email"
	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	userRepo repositories.UserRepository
	mail     *email.Dispatcher
	cfg      *config.Config
}

func NewAuthService(userRepo repositories.UserRepository, mail *email.Dispatcher, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, mail: mail, cfg: cfg}
}

// Me returns the authenticated account, agent profile included when one
// exists.
func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Register creates the account and queues the verification mail. Agents get
// the agent role here; their professional profile is a second step and the
// account cannot publish listings until an admin approves it.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	role := models.UserRoleUser
	if req.Role == string(models.UserRoleAgent) {
		role = models.UserRoleAgent
	}

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              role,
		Status:            models.UserStatusActive,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		VerificationToken: uuid.NewString(),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.StorageError(err)
	}

	s.mail.Dispatch(
		[]string{user.Email},
		"Verify your EstateHub account",
		email.TemplateVerification,
		email.TemplateData{
			"Name": user.FirstName,
			"Link": s.cfg.Email.BaseURL + "/verify-email?token=" + user.VerificationToken,
		},
	)

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "role", role)
	return s.authResponse(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.StorageError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return s.authResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	// Rotation: the presented token is consumed, a fresh pair is issued.
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.StorageError(err)
	}
	return s.tokenPair(user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return apperrors.StorageError(err)
	}
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"is_verified":        true,
		"verification_token": "",
	})
	if err != nil {
		return apperrors.StorageError(err)
	}
	logger.CtxInfo(ctx, "email verified", "user_id", user.ID)
	return nil
}

// ForgotPassword always reports success so the endpoint cannot be used to
// probe which emails are registered.
func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.StorageError(err)
	}

	token := uuid.NewString()
	expires := time.Now().Add(time.Hour)
	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"reset_token":     token,
		"reset_token_exp": expires,
	})
	if err != nil {
		return apperrors.StorageError(err)
	}

	s.mail.Dispatch(
		[]string{user.Email},
		"Reset your EstateHub password",
		email.TemplatePasswordReset,
		email.TemplateData{
			"Name": user.FirstName,
			"Link": s.cfg.Email.BaseURL + "/reset-password?token=" + token,
		},
	)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"password_hash":   hash,
		"reset_token":     "",
		"reset_token_exp": nil,
	})
	if err != nil {
		return apperrors.StorageError(err)
	}

	// Password change revokes every session.
	if err := s.userRepo.DeleteRefreshTokensForUser(user.ID); err != nil {
		return apperrors.StorageError(err)
	}
	logger.CtxInfo(ctx, "password reset", "user_id", user.ID)
	return nil
}

func (s *authService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	tokens, err := s.tokenPair(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:   dto.ToUserResponse(user),
		Tokens: *tokens,
	}, nil
}

func (s *authService) tokenPair(user *models.User) (*dto.TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := uuid.NewString()
	record := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.JWT.RefreshTTL) * time.Hour),
	}
	if err := s.userRepo.SaveRefreshToken(record); err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
