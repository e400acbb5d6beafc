package repo

import (
	"context"
	"time"

	"github.com/KingDev1404/freshbulk/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) SaveRefreshToken(ctx context.Context, token string, userID uint, exp time.Time) error {
	rec := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: exp.Unix(),
		Revoked:   false,
	}
	return r.DB.WithContext(ctx).Create(&rec).Error
}

func (r *GormRepo) RefreshTokenByValue(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rec models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked", true).Error
}
