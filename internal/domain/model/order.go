package model

import "time"

type OrderStatus string

const (
	OrderStatusCreated       OrderStatus = "CREATED"
	OrderStatusPlaced        OrderStatus = "PLACED"
	OrderStatusConfirmed     OrderStatus = "CONFIRMED"
	OrderStatusPaymentFailed OrderStatus = "PAYMENT_FAILED"
	OrderStatusCancelled     OrderStatus = "CANCELLED"
	OrderStatusShipped       OrderStatus = "SHIPPED"
	OrderStatusDelivered     OrderStatus = "DELIVERED"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// 注文。明細確定後はstatus/payment系以外は変更しない。
type Order struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64         `gorm:"not null;index" json:"userId"`
	TotalAmount     float64       `gorm:"not null" json:"totalAmount"`
	Status          OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);not null" json:"paymentStatus"`
	PaymentMethod   string        `gorm:"type:varchar(50)" json:"paymentMethod"`
	RazorpayOrderID string        `gorm:"type:varchar(100);column:razorpay_order_id" json:"razorpayOrderId,omitempty"`
	PaymentID       string        `gorm:"type:varchar(100)" json:"paymentId,omitempty"`
	ShippingAddress string        `gorm:"type:text" json:"shippingAddress"`
	CreatedAt       time.Time     `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 終端ステータスか（以後の変更不可）
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}
