package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

var testCfg = config.Config{JWTSecret: "test_secret"}

func TestAuthUsecase_Register_Success(t *testing.T) {
	users := new(UserRepoMock)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		if u.Email != "taro@example.com" || u.Name != "Taro" {
			return false
		}
		if u.Role != model.RoleUser {
			return false
		}
		// 平文パスワードをそのまま保存していないこと
		return u.Password != "password123" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil)

	uc := usecase.NewAuthUsecase(testCfg, users, okValidator{})

	out, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name:     "Taro",
		Email:    "taro@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "taro@example.com", out.Email)
	assert.Equal(t, "USER", out.Role)

	users.AssertExpectations(t)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	users := new(UserRepoMock)
	users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicateEmail)

	uc := usecase.NewAuthUsecase(testCfg, users, okValidator{})

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name:     "Taro",
		Email:    "taro@example.com",
		Password: "password123",
	})
	assertErrContains(t, err, "already registered")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestAuthUsecase_Login_Success_TokenClaims(t *testing.T) {
	pwHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(&model.User{
		ID:       7,
		Name:     "Taro",
		Email:    "taro@example.com",
		Password: string(pwHash),
		Role:     model.RoleUser,
	}, nil)

	uc := usecase.NewAuthUsecase(testCfg, users, okValidator{})

	out, err := uc.Login(context.Background(), usecase.LoginInput{
		Email:    "taro@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.UserID)
	assert.Equal(t, "USER", out.Role)
	assert.NotEmpty(t, out.Token)

	// tokenのclaimsを検証（sub=email、role、24時間有効）
	token, err := jwt.Parse(out.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testCfg.JWTSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "taro@example.com", claims["sub"])
	assert.Equal(t, "USER", claims["role"])

	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	assert.Equal(t, int64((24 * time.Hour).Seconds()), exp-iat)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	pwHash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(&model.User{
		ID:       7,
		Email:    "taro@example.com",
		Password: string(pwHash),
		Role:     model.RoleUser,
	}, nil)

	uc := usecase.NewAuthUsecase(testCfg, users, okValidator{})

	_, err := uc.Login(context.Background(), usecase.LoginInput{
		Email:    "taro@example.com",
		Password: "wrongpass",
	})
	assertErrContains(t, err, "invalid credentials")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, he.Status)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repo.ErrUserNotFound)

	uc := usecase.NewAuthUsecase(testCfg, users, okValidator{})

	_, err := uc.Login(context.Background(), usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	// 存在有無で応答を変えない
	assertErrContains(t, err, "invalid credentials")
}
