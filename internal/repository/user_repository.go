package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// email重複（uniqueIndex違反）を統一
var ErrDuplicateEmail = errors.New("email already registered")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email重複は ErrDuplicateEmail）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//全ユーザー一覧（管理画面用）
	ListAll(ctx context.Context) ([]model.User, error)
	//ユーザー削除
	Delete(ctx context.Context, userID int64) error
	//総ユーザー数
	Count(ctx context.Context) (int64, error)
}
