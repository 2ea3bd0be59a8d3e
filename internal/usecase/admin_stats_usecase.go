package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ダッシュボードで「低在庫」と数える閾値
const lowStockThreshold = 10

type AdminStatsUsecase struct {
	users       repo.UserRepository
	productRepo repo.ProductRepository
	orderRepo   repo.OrderRepository
}

// DI
func NewAdminStatsUsecase(
	users repo.UserRepository,
	productRepo repo.ProductRepository,
	orderRepo repo.OrderRepository,
) *AdminStatsUsecase {
	return &AdminStatsUsecase{
		users:       users,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

type StatsResponse struct {
	TotalProducts    int64   `json:"totalProducts"`
	TotalUsers       int64   `json:"totalUsers"`
	TotalOrders      int64   `json:"totalOrders"`
	TotalRevenue     float64 `json:"totalRevenue"`
	PendingOrders    int64   `json:"pendingOrders"`
	LowStockProducts int64   `json:"lowStockProducts"`
}

// ダッシュボードの集計値一式。
func (u *AdminStatsUsecase) Stats(ctx context.Context) (StatsResponse, error) {
	totalProducts, err := u.productRepo.Count(ctx)
	if err != nil {
		return StatsResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalUsers, err := u.users.Count(ctx)
	if err != nil {
		return StatsResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalOrders, err := u.orderRepo.Count(ctx)
	if err != nil {
		return StatsResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalRevenue, err := u.orderRepo.SumTotalAmount(ctx)
	if err != nil {
		return StatsResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pendingOrders, err := u.orderRepo.CountByPaymentStatus(ctx, model.PaymentStatusPending)
	if err != nil {
		return StatsResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lowStock, err := u.productRepo.CountLowStock(ctx, lowStockThreshold)
	if err != nil {
		return StatsResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return StatsResponse{
		TotalProducts:    totalProducts,
		TotalUsers:       totalUsers,
		TotalOrders:      totalOrders,
		TotalRevenue:     totalRevenue,
		PendingOrders:    pendingOrders,
		LowStockProducts: lowStock,
	}, nil
}
