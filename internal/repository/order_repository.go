package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	// 管理者用の注文一覧（新着順）
	ListAll(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//決済ゲートウェイの注文IDを紐付け
	SetRazorpayOrderID(ctx context.Context, orderID int64, razorpayOrderID string) error
	//署名検証OK：PAID/CONFIRMEDにしてpaymentIdを記録
	MarkPaid(ctx context.Context, orderID int64, paymentID string) error
	//署名検証NG：FAILED/PAYMENT_FAILED
	MarkFailed(ctx context.Context, orderID int64) error

	//ダッシュボード用
	Count(ctx context.Context) (int64, error)
	SumTotalAmount(ctx context.Context) (float64, error)
	CountByPaymentStatus(ctx context.Context, status model.PaymentStatus) (int64, error)
}
