package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	users       repo.UserRepository
	orderRepo   repo.OrderRepository
	itemRepo    repo.OrderItemRepository
	productRepo repo.ProductRepository
	tx          repo.TransactionManager
	auditRepo   repo.AuditLogRepository
}

// DI
func NewAdminOrderUsecase(
	users repo.UserRepository,
	orderRepo repo.OrderRepository,
	itemRepo repo.OrderItemRepository,
	productRepo repo.ProductRepository,
	tx repo.TransactionManager,
	auditRepo repo.AuditLogRepository,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		users:       users,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		tx:          tx,
		auditRepo:   auditRepo,
	}
}

type AdminUpdateOrderStatusInput struct {
	Status string `json:"status"`
}

// 全注文一覧（新着順、明細つき）。
func (u *AdminOrderUsecase) List(ctx context.Context) ([]OrderResponse, error) {
	orders, err := u.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		r, err := u.buildResponse(ctx, o)
		if err != nil {
			return nil, err
		}
		resp = append(resp, r)
	}

	return resp, nil
}

// 注文詳細（管理者は誰の注文でも見られる）。
func (u *AdminOrderUsecase) Get(ctx context.Context, orderID int64) (OrderResponse, error) {
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

	return u.buildResponse(ctx, order)
}

// ステータス更新（CANCELLEDなら在庫戻し、監査ログ付き）。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, adminEmail string, orderID int64, in AdminUpdateOrderStatusInput) (OrderResponse, error) {
	admin, err := resolveUser(ctx, u.users, adminEmail)
	if err != nil {
		return OrderResponse{}, err
	}
	if orderID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	switch newStatus {
	case model.OrderStatusConfirmed, model.OrderStatusShipped, model.OrderStatusDelivered, model.OrderStatusCancelled:
		// OK
	default:
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}
		// 終端ガード
		if o.Status.IsTerminal() {
			return NewHTTPError(http.StatusBadRequest, "order status is final")
		}

		// キャンセルにするときだけ在庫を戻す
		if newStatus == model.OrderStatusCancelled {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			for _, it := range items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（UPDATE_ORDER_STATUS）
		beforeJSON := `{"status":"` + string(o.Status) + `"}`
		afterJSON := `{"status":"` + string(newStatus) + `"}`
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  admin.ID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
	if err != nil {
		return OrderResponse{}, err
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildResponse(ctx, order)
}

func (u *AdminOrderUsecase) buildResponse(ctx context.Context, order model.Order) (OrderResponse, error) {
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
