package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// 一意制約違反（name重複など）を統一
var ErrConflict = errors.New("conflict")

type CategoryRepository interface {
	ListAll(ctx context.Context) ([]model.Category, error)
	// name重複はErrConflictを返す
	Create(ctx context.Context, c model.Category) (model.Category, error)
}
