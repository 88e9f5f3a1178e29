package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todolist/internal/model"
)

// AccountRepository handles the persisted account list. Accounts are only
// ever created and read; there is no update or delete path.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// FindByCredentials returns the account matching both username and password
// exactly. Passwords are compared in clear text, same as the stored form.
func (r *AccountRepository) FindByCredentials(ctx context.Context, username, password string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count email: %w", err)
	}
	return count > 0, nil
}

func (r *AccountRepository) MobileTaken(ctx context.Context, mobile string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("mobile = ?", mobile).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count mobile: %w", err)
	}
	return count > 0, nil
}

func (r *AccountRepository) ListAll(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}
