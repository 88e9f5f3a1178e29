package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todolist/internal/model"
)

// ResetRepository stores the forgot-password submission. The legacy app kept
// a single "password" key that every submission overwrote, so this table
// holds at most one row and the value is tied to no account.
type ResetRepository struct {
	db *gorm.DB
}

func NewResetRepository(db *gorm.DB) *ResetRepository {
	return &ResetRepository{db: db}
}

// Save overwrites the stored password value.
func (r *ResetRepository) Save(ctx context.Context, password string) error {
	db := r.db.WithContext(ctx)

	var reset model.PasswordReset
	err := db.First(&reset).Error
	switch {
	case err == nil:
		reset.Password = password
		if err := db.Save(&reset).Error; err != nil {
			return fmt.Errorf("update reset password: %w", err)
		}
		return nil
	case err == gorm.ErrRecordNotFound:
		reset = model.PasswordReset{Password: password}
		if err := db.Create(&reset).Error; err != nil {
			return fmt.Errorf("create reset password: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("find reset password: %w", err)
	}
}

// Last returns the most recently saved password value, if any.
func (r *ResetRepository) Last(ctx context.Context) (string, error) {
	var reset model.PasswordReset
	if err := r.db.WithContext(ctx).First(&reset).Error; err != nil {
		return "", err
	}
	return reset.Password, nil
}
