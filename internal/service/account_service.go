package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todolist/internal/model"
	"todolist/internal/repository"
	"todolist/internal/validate"
)

// ErrInvalidCredentials is returned on signin failure. It deliberately does
// not say whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AccountService wraps signup, signin and the forgot-password flow.
type AccountService struct {
	accountRepo *repository.AccountRepository
	resetRepo   *repository.ResetRepository
}

func NewAccountService(accountRepo *repository.AccountRepository, resetRepo *repository.ResetRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo, resetRepo: resetRepo}
}

// Signup validates the candidate account and appends it to the store. The
// returned map carries user-facing messages per field; format violations are
// reported first, and only a format-clean submission is checked for an
// already-used email or mobile. Username uniqueness is not enforced.
func (s *AccountService) Signup(ctx context.Context, input validate.SignupInput) (validate.Errors, error) {
	if errs := validate.Signup(input); !errs.Ok() {
		return errs, nil
	}

	errs := validate.Errors{}
	emailTaken, err := s.accountRepo.EmailTaken(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		errs["email"] = "Email is already used. Use another email."
	}
	mobileTaken, err := s.accountRepo.MobileTaken(ctx, input.Mobile)
	if err != nil {
		return nil, err
	}
	if mobileTaken {
		errs["mobile"] = "Mobile number is already used. Use another mobile number."
	}
	if !errs.Ok() {
		return errs, nil
	}

	account := model.Account{
		Username: input.Username,
		Password: input.Password,
		Email:    input.Email,
		Mobile:   input.Mobile,
	}
	if err := s.accountRepo.Create(ctx, &account); err != nil {
		return nil, err
	}
	return nil, nil
}

// Signin looks for an exact username and password match.
func (s *AccountService) Signin(ctx context.Context, username, password string) (*model.Account, error) {
	account, err := s.accountRepo.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("signin: %w", err)
	}
	return account, nil
}

// ResetPassword runs the forgot-password flow: the first rule violation
// comes back as a message, otherwise the submitted password overwrites the
// stored reset value.
func (s *AccountService) ResetPassword(ctx context.Context, input validate.ResetInput) (string, error) {
	if msg := validate.Reset(input); msg != "" {
		return msg, nil
	}
	if err := s.resetRepo.Save(ctx, input.NewPassword); err != nil {
		return "", err
	}
	return "", nil
}
