package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminUserUsecase struct {
	users     repo.UserRepository
	auditRepo repo.AuditLogRepository
}

// DI
func NewAdminUserUsecase(users repo.UserRepository, auditRepo repo.AuditLogRepository) *AdminUserUsecase {
	return &AdminUserUsecase{
		users:     users,
		auditRepo: auditRepo,
	}
}

// 全ユーザー一覧。
func (u *AdminUserUsecase) List(ctx context.Context) ([]UserResponse, error) {
	users, err := u.users.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}

	return resp, nil
}

// ユーザー詳細。
func (u *AdminUserUsecase) Get(ctx context.Context, userID int64) (UserResponse, error) {
	if userID <= 0 {
		return UserResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return UserResponse{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserResponse(user), nil
}

const defaultAuditLogLimit = 50

// 管理操作の監査ログ一覧（新着順）。
func (u *AdminUserUsecase) ListAuditLogs(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultAuditLogLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return logs, nil
}

// ユーザー削除。ADMINは消せない。
func (u *AdminUserUsecase) Delete(ctx context.Context, adminEmail string, userID int64) error {
	admin, err := resolveUser(ctx, u.users, adminEmail)
	if err != nil {
		return err
	}
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	target, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if target.Role == model.RoleAdmin {
		return NewHTTPError(http.StatusForbidden, "cannot delete admin user")
	}

	if err := u.users.Delete(ctx, userID); err != nil {
		if err == repo.ErrUserNotFound {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（DELETE_USER）
	beforeJSON := `{"email":"` + target.Email + `"}`
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  admin.ID,
		Action:       model.AuditActionDeleteUser,
		ResourceType: model.AuditResourceUser,
		ResourceID:   userID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    "{}",
	})

	return nil
}
