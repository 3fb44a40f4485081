package repo

import (
	"context"
	"errors"

	"github.com/tgcs/experience-api/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoginRepo interface {
	Get(ctx context.Context, email string) (*model.Login, error)
	// Upsert creates the login for email or replaces its hash and expiration.
	Upsert(ctx context.Context, l *model.Login) error
	UpdateExpiration(ctx context.Context, email string, expiration int64) error
	Delete(ctx context.Context, email string) error
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type loginRepo struct{ db *gorm.DB }

func NewLoginRepo(db *gorm.DB) LoginRepo {
	return &loginRepo{db: db}
}

func (r *loginRepo) Get(ctx context.Context, email string) (*model.Login, error) {
	var l model.Login
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *loginRepo) Upsert(ctx context.Context, l *model.Login) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"hash", "expiration"}),
		}).
		Create(l).Error
}

func (r *loginRepo) UpdateExpiration(ctx context.Context, email string, expiration int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Login{}).
		Where("email = ?", email).
		Update("expiration", expiration).Error
}

func (r *loginRepo) Delete(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&model.Login{}).Error
}

func (r *loginRepo) IsAdmin(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
