package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/KingDev1404/freshbulk/internal/hash"
	"github.com/KingDev1404/freshbulk/internal/models"
	"github.com/KingDev1404/freshbulk/internal/repo"
	"github.com/KingDev1404/freshbulk/internal/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

// Register creates a BUYER account. There is no self-promotion path:
// admin accounts come from seeding or manual provisioning only.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	if _, err := s.Repo.UserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleBuyer,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the token pair: the presented refresh token is revoked
// and a new pair is issued, provided it is known, unexpired and unrevoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	stored, err := s.Repo.RefreshTokenByValue(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown refresh token", ErrUnauthorized)
		}
		return nil, err
	}
	if stored.Revoked || time.Now().Unix() > stored.ExpiresAt {
		return nil, fmt.Errorf("%w: refresh token expired or revoked", ErrUnauthorized)
	}

	if sub, err := claims.UserID(); err != nil || sub != stored.UserID {
		return nil, fmt.Errorf("%w: refresh token subject mismatch", ErrUnauthorized)
	}

	user, err := s.Repo.UserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResult, error) {
	accessExp := time.Now().Add(tokens.AccessTTL)
	accessToken, err := tokens.SignAccessToken(user.ID, user.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	refreshToken, err := tokens.SignRefreshToken(user.ID, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SaveRefreshToken(ctx, refreshToken, user.ID, refreshExp); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}
