package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	EventType       string          `json:"event_type" gorm:"size:100;default:'Others'"`
	UserID          uint            `json:"user_id" gorm:"not null;index"`
	User            *UserAccount    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ProviderID      *uint           `json:"provider_id" gorm:"index"`
	Provider        *UserAccount    `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:numeric(10,2);not null"`
	Paid            bool            `json:"paid" gorm:"default:false"`
	MpesaCode       string          `json:"mpesa_code" gorm:"size:10"`
	TakenByProvider bool            `json:"taken_by_provider" gorm:"default:false"`
	Telephone       string          `json:"telephone" gorm:"size:15;not null"`
	Location        string          `json:"location" gorm:"size:255;not null"`
	Date            time.Time       `json:"date" gorm:"type:date;not null"`
	Status          string          `json:"status" gorm:"default:'PENDING'"` // PENDING, PROCESSING, COMPLETED, CANCELLED
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"deleted_at" gorm:"index"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Claimed reports whether a provider currently holds this order.
func (o *Order) Claimed() bool {
	return o.ProviderID != nil
}
