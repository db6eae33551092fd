package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/domain UserRepository,Mailer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SupermaxiMarket/pme-freelance-assistant/config"
	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/domain"
	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/dto"
	autherror "github.com/SupermaxiMarket/pme-freelance-assistant/internal/errors"
)

const (
	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
)

type UserService struct {
	repo   domain.UserRepository
	tokens TokenGenerator
	mailer domain.Mailer
	cfg    *config.Config
	log    *zap.Logger
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, mailer domain.Mailer,
	cfg *config.Config, log *zap.Logger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, *dto.TokenPair, error) {
	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if existingUser != nil {
		return nil, nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		BusinessType: input.BusinessType,
		IsPremium:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique constraint on email closes the race between the lookup
	// above and this insert; the repository maps it to ErrEmailAlreadyInUse.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*domain.User, *dto.TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}

	if user == nil || !VerifyPassword(input.Password, user.PasswordHash) {
		return nil, nil, autherror.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", autherror.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", autherror.ErrUserNotFound
	}

	return s.tokens.GenerateAccessToken(user.ID)
}

// ForgotPassword issues a single-use reset token for the account. An unknown
// email is not an error: the caller gets the same outcome either way so the
// endpoint cannot be used to probe which addresses are registered. The
// returned token is non-empty only in development mode.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}

	token, err := generateResetToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return "", err
	}

	// Delivery is best-effort: a mail failure must not surface as an error
	// response, or it would leak that the address is registered.
	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		s.log.Warn("failed to send password reset email", zap.String("user_id", user.ID), zap.Error(err))
	}

	if s.cfg.IsDevelopment() {
		return token, nil
	}

	return "", nil
}

// ResetPassword consumes a reset token. Unknown, wrong and expired tokens are
// indistinguishable to the caller.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.repo.GetByValidResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrInvalidResetToken
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	// UpdatePassword clears both reset fields in the same statement, so the
	// token cannot be replayed.
	return s.repo.UpdatePassword(ctx, user.ID, hashedPassword)
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return user, nil
}

// UpdateProfile patches the mutable profile fields. An empty field keeps the
// stored value.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) issueTokens(userID string) (*dto.TokenPair, error) {
	accessToken, refreshToken, err := s.tokens.Generate(userID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
