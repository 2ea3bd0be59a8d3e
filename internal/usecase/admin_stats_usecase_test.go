package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdminStatsUsecase_Stats(t *testing.T) {
	users := new(UserRepoMock)
	products := new(ProductRepoMock)
	orders := new(OrderRepoMock)

	products.On("Count", mock.Anything).Return(int64(120), nil)
	users.On("Count", mock.Anything).Return(int64(45), nil)
	orders.On("Count", mock.Anything).Return(int64(300), nil)
	orders.On("SumTotalAmount", mock.Anything).Return(123456.50, nil)
	orders.On("CountByPaymentStatus", mock.Anything, model.PaymentStatusPending).Return(int64(12), nil)
	// 低在庫は10未満
	products.On("CountLowStock", mock.Anything, int64(10)).Return(int64(7), nil)

	uc := usecase.NewAdminStatsUsecase(users, products, orders)

	out, err := uc.Stats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(120), out.TotalProducts)
	assert.Equal(t, int64(45), out.TotalUsers)
	assert.Equal(t, int64(300), out.TotalOrders)
	assert.InDelta(t, 123456.50, out.TotalRevenue, 0.001)
	assert.Equal(t, int64(12), out.PendingOrders)
	assert.Equal(t, int64(7), out.LowStockProducts)
}
