package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// JWTのsub（email）からユーザーを引く。見つからなければ401。
func resolveUser(ctx context.Context, users repo.UserRepository, email string) (*model.User, error) {
	if email == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := users.FindByEmail(ctx, email)
	if err == repo.ErrUserNotFound {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return user, nil
}
