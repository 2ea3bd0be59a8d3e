package validator

import (
	"context"
	"errors"
	"strings"

	"app/internal/usecase"

	"github.com/go-playground/validator/v10"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")
)

type authValidator struct {
	validate *validator.Validate
}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{validate: validator.New()}
}

type registerInput struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, name string, email string, password string) error {
	in := registerInput{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}

	if err := v.validate.StructCtx(ctx, in); err != nil {
		return ErrInvalidInput
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	in := loginInput{
		Email:    strings.TrimSpace(email),
		Password: password,
	}

	if err := v.validate.StructCtx(ctx, in); err != nil {
		return ErrInvalidInput
	}

	return nil
}
