package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func adminTestUser(users *UserRepoMock) {
	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{
		ID:    99,
		Email: "admin@example.com",
		Role:  model.RoleAdmin,
	}, nil)
}

func TestAdminUserUsecase_Delete_RefusesAdmin(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)

	adminTestUser(users)

	users.On("FindByID", mock.Anything, int64(2)).Return(&model.User{
		ID:    2,
		Email: "other-admin@example.com",
		Role:  model.RoleAdmin,
	}, nil)

	uc := usecase.NewAdminUserUsecase(users, audit)

	err := uc.Delete(context.Background(), "admin@example.com", 2)
	assertErrContains(t, err, "cannot delete admin")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)

	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdminUserUsecase_Delete_Success_Audits(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)

	adminTestUser(users)

	users.On("FindByID", mock.Anything, int64(5)).Return(&model.User{
		ID:    5,
		Email: "taro@example.com",
		Role:  model.RoleUser,
	}, nil)
	users.On("Delete", mock.Anything, int64(5)).Return(nil)

	audit.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.ActorUserID == 99 &&
			a.Action == model.AuditActionDeleteUser &&
			a.ResourceType == model.AuditResourceUser &&
			a.ResourceID == 5
	})).Return(nil)

	uc := usecase.NewAdminUserUsecase(users, audit)

	err := uc.Delete(context.Background(), "admin@example.com", 5)
	assert.NoError(t, err)

	users.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminUserUsecase_Get_NotFound(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)

	users.On("FindByID", mock.Anything, int64(5)).Return(nil, repo.ErrUserNotFound)

	uc := usecase.NewAdminUserUsecase(users, audit)

	_, err := uc.Get(context.Background(), 5)
	assertErrContains(t, err, "user not found")
}

func TestAdminUserUsecase_List_HidesPassword(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)

	users.On("ListAll", mock.Anything).Return([]model.User{
		{ID: 1, Name: "Taro", Email: "taro@example.com", Password: "hash", Role: model.RoleUser},
	}, nil)

	uc := usecase.NewAdminUserUsecase(users, audit)

	out, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))
	assert.Equal(t, "taro@example.com", out[0].Email)
}

// limit未指定なら既定値で絞って監査ログを返す。
func TestAdminUserUsecase_ListAuditLogs_AppliesDefaultLimit(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)

	audit.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.Limit == 50 && f.Offset == 0
	})).Return([]model.AuditLog{
		{ID: 1, ActorUserID: 99, Action: model.AuditActionUpdateStock},
	}, nil)

	uc := usecase.NewAdminUserUsecase(users, audit)

	out, err := uc.ListAuditLogs(context.Background(), repo.AuditLogFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))
	assert.Equal(t, model.AuditActionUpdateStock, out[0].Action)

	audit.AssertExpectations(t)
}

func TestAdminUserUsecase_ListAuditLogs_PassesFilter(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)

	action := model.AuditActionDeleteUser
	audit.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.Action != nil && *f.Action == action && f.Limit == 10 && f.Offset == 20
	})).Return([]model.AuditLog{}, nil)

	uc := usecase.NewAdminUserUsecase(users, audit)

	out, err := uc.ListAuditLogs(context.Background(), repo.AuditLogFilter{
		Action: &action,
		Limit:  10,
		Offset: 20,
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out))

	audit.AssertExpectations(t)
}
