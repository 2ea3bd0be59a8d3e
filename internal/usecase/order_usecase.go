package usecase

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 決済ゲートウェイの約束。テストではfakeを注入する。
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string) (string, error)
	VerifySignature(gatewayOrderID string, paymentID string, signature string) bool
	KeyID() string
}

type OrderUsecase struct {
	users       repo.UserRepository
	orderRepo   repo.OrderRepository
	itemRepo    repo.OrderItemRepository
	cartRepo    repo.CartItemRepository
	productRepo repo.ProductRepository
	txManager   repo.TransactionManager
	gateway     PaymentGateway
}

// DI
func NewOrderUsecase(
	users repo.UserRepository,
	orderRepo repo.OrderRepository,
	itemRepo repo.OrderItemRepository,
	cartRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	txManager repo.TransactionManager,
	gateway PaymentGateway,
) *OrderUsecase {
	return &OrderUsecase{
		users:       users,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		txManager:   txManager,
		gateway:     gateway,
	}
}

type CheckoutInput struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

type OrderItemResponse struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	TotalAmount     float64             `json:"totalAmount"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"paymentStatus"`
	PaymentMethod   string              `json:"paymentMethod"`
	ShippingAddress string              `json:"shippingAddress"`
	CreatedAt       time.Time           `json:"createdAt"`
	Items           []OrderItemResponse `json:"items"`
}

// Razorpay checkout初期化に必要な値一式。amountはpaise。
type PaymentOrderResponse struct {
	OrderID         int64  `json:"orderId"`
	RazorpayOrderID string `json:"razorpayOrderId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	KeyID           string `json:"keyId"`
}

type VerifyPaymentInput struct {
	OrderID           int64  `json:"orderId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

type VerifyPaymentResponse struct {
	OrderID       int64  `json:"orderId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// Checkout はカートの中身から注文を確定する（代引きなどゲートウェイなし）。
// 在庫減算・注文作成・カートクリアを1トランザクションで行う。
func (u *OrderUsecase) Checkout(ctx context.Context, email string, in CheckoutInput) (OrderResponse, error) {
	order, err := u.placeOrderFromCart(ctx, email, in, model.OrderStatusPlaced)
	if err != nil {
		return OrderResponse{}, err
	}

	return u.buildOrderResponse(ctx, order)
}

// CreatePaymentOrder はRazorpay決済に乗せる注文を作る。
// ローカル注文はCREATEDで作り、ゲートウェイのorder_idを紐付ける。
func (u *OrderUsecase) CreatePaymentOrder(ctx context.Context, email string, in CheckoutInput) (PaymentOrderResponse, error) {
	if in.PaymentMethod == "" {
		in.PaymentMethod = "RAZORPAY"
	}

	order, err := u.placeOrderFromCart(ctx, email, in, model.OrderStatusCreated)
	if err != nil {
		return PaymentOrderResponse{}, err
	}

	// 最小通貨単位に変換（INRはpaise）
	amountPaise := int64(math.Round(order.TotalAmount * 100))
	receipt := fmt.Sprintf("order_%d", order.ID)

	gatewayOrderID, err := u.gateway.CreateOrder(ctx, amountPaise, receipt)
	if err != nil {
		// ゲートウェイに乗らなかった注文はキャンセル済みにして在庫を戻す
		_ = u.restoreAndCancel(ctx, order.ID)
		return PaymentOrderResponse{}, NewHTTPError(http.StatusBadGateway, "payment gateway error")
	}

	if err := u.orderRepo.SetRazorpayOrderID(ctx, order.ID, gatewayOrderID); err != nil {
		return PaymentOrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return PaymentOrderResponse{
		OrderID:         order.ID,
		RazorpayOrderID: gatewayOrderID,
		Amount:          amountPaise,
		Currency:        "INR",
		KeyID:           u.gateway.KeyID(),
	}, nil
}

// VerifyPayment は決済完了コールバックの署名を検証して注文を確定/失敗にする。
func (u *OrderUsecase) VerifyPayment(ctx context.Context, email string, in VerifyPaymentInput) (VerifyPaymentResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return VerifyPaymentResponse{}, err
	}
	if in.OrderID <= 0 || in.RazorpayOrderID == "" || in.RazorpayPaymentID == "" || in.RazorpaySignature == "" {
		return VerifyPaymentResponse{}, NewHTTPError(http.StatusBadRequest, "invalid input")
	}

	order, err := u.orderRepo.FindByID(ctx, in.OrderID)
	if err == repo.ErrNotFound {
		return VerifyPaymentResponse{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return VerifyPaymentResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != user.ID {
		return VerifyPaymentResponse{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	// キャンセル済み/確定済みの注文をコールバック再送で動かさない
	if order.Status.IsTerminal() || order.PaymentStatus != model.PaymentStatusPending {
		return VerifyPaymentResponse{}, NewHTTPError(http.StatusBadRequest, "order is not awaiting payment")
	}

	// 紐付いたゲートウェイ注文と一致しないコールバックは弾く
	if order.RazorpayOrderID == "" || order.RazorpayOrderID != in.RazorpayOrderID {
		return VerifyPaymentResponse{}, NewHTTPError(http.StatusBadRequest, "order mismatch")
	}

	if !u.gateway.VerifySignature(in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature) {
		if err := u.orderRepo.MarkFailed(ctx, order.ID); err != nil {
			return VerifyPaymentResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return VerifyPaymentResponse{}, NewHTTPError(http.StatusBadRequest, "payment verification failed")
	}

	if err := u.orderRepo.MarkPaid(ctx, order.ID, in.RazorpayPaymentID); err != nil {
		return VerifyPaymentResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return VerifyPaymentResponse{
		OrderID:       order.ID,
		Status:        string(model.OrderStatusConfirmed),
		PaymentStatus: string(model.PaymentStatusPaid),
	}, nil
}

// 自分の注文一覧（新着順）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, email string) ([]OrderResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return nil, err
	}

	orders, err := u.orderRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		r, err := u.buildOrderResponse(ctx, o)
		if err != nil {
			return nil, err
		}
		resp = append(resp, r)
	}

	return resp, nil
}

// 注文詳細（本人のみ）。
func (u *OrderUsecase) GetOrder(ctx context.Context, email string, orderID int64) (OrderResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return OrderResponse{}, err
	}
	if orderID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != user.ID {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	return u.buildOrderResponse(ctx, order)
}

// CancelOrder は注文をキャンセルして在庫を戻す。
// 出荷後（SHIPPED/DELIVERED）はキャンセル不可。
func (u *OrderUsecase) CancelOrder(ctx context.Context, email string, orderID int64) (OrderResponse, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return OrderResponse{}, err
	}
	if orderID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != user.ID {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	switch order.Status {
	case model.OrderStatusShipped, model.OrderStatusDelivered:
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "order cannot be cancelled after shipping")
	case model.OrderStatusCancelled:
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "order already cancelled")
	}

	if err := u.restoreAndCancel(ctx, order.ID); err != nil {
		if _, ok := AsHTTPError(err); ok {
			return OrderResponse{}, err
		}
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order, err = u.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildOrderResponse(ctx, order)
}

// カートの中身から注文を1トランザクションで作る共通処理。
// 在庫は条件付きUPDATEで減算し、足りなければ全体をロールバックする。
func (u *OrderUsecase) placeOrderFromCart(ctx context.Context, email string, in CheckoutInput, status model.OrderStatus) (model.Order, error) {
	user, err := resolveUser(ctx, u.users, email)
	if err != nil {
		return model.Order{}, err
	}

	if strings.TrimSpace(in.ShippingAddress) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "shipping address is required")
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = "COD"
	}

	var created model.Order

	err = u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		cartItems, err := r.CartItems().ListByUserID(ctx, user.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		var total float64 = 0
		orderItems := make([]model.OrderItem, 0, len(cartItems))

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "insufficient stock for "+p.Name)
			}

			total += p.Price * float64(ci.Quantity)
			orderItems = append(orderItems, model.OrderItem{
				ProductID:   ci.ProductID,
				Quantity:    ci.Quantity,
				PriceAtTime: p.Price,
			})
		}

		order := model.Order{
			UserID:          user.ID,
			TotalAmount:     total,
			Status:          status,
			PaymentStatus:   model.PaymentStatusPending,
			PaymentMethod:   in.PaymentMethod,
			ShippingAddress: in.ShippingAddress,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 確定した注文の分だけカートを空にする
		if err := r.CartItems().DeleteByUserID(ctx, user.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created, err = r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return model.Order{}, err
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

// 在庫を戻してCANCELLEDにする（1トランザクション）。
// 同時キャンセルの二重返却を防ぐため、状態確認はトランザクション内でやり直す。
func (u *OrderUsecase) restoreAndCancel(ctx context.Context, orderID int64) error {
	return u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		switch order.Status {
		case model.OrderStatusShipped, model.OrderStatusDelivered:
			return NewHTTPError(http.StatusBadRequest, "order cannot be cancelled after shipping")
		case model.OrderStatusCancelled:
			return NewHTTPError(http.StatusBadRequest, "order already cancelled")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return err
		}

		for _, it := range items {
			if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}

		return r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled)
	})
}

// 明細と商品名を埋めてOrderResponseを作る。
func (u *OrderUsecase) buildOrderResponse(ctx context.Context, order model.Order) (OrderResponse, error) {
	items, err := u.itemRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		name := ""
		if p, err := u.productRepo.FindByID(ctx, it.ProductID); err == nil {
			name = p.Name
		}

		respItems = append(respItems, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: name,
			Quantity:    it.Quantity,
			Price:       it.PriceAtTime,
		})
	}

	return OrderResponse{
		ID:              order.ID,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		PaymentMethod:   order.PaymentMethod,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		Items:           respItems,
	}, nil
}
