package model

import "time"

// 注文明細。priceAtTimeは注文時点の価格スナップショット。
type OrderItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64     `gorm:"not null;index" json:"orderId"`
	ProductID   int64     `gorm:"not null;index" json:"productId"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	PriceAtTime float64   `gorm:"not null;column:price_at_time" json:"priceAtTime"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
