package model

import "time"

type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	GenderTag   string    `gorm:"type:varchar(50);index" json:"genderTag"`
	ImageURL    string    `gorm:"type:varchar(500);column:image_url" json:"imageUrl"`
	StockQty    int64     `gorm:"not null;default:0" json:"stockQty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
