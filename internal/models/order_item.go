package models

import (
	"github.com/shopspring/decimal"
)

// OrderItem captures the unit price at order time so historical orders
// are unaffected by later catalog price changes.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	ServiceID uint            `json:"service_id" gorm:"not null"`
	Service   *Service        `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Quantity  int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
}

func (i *OrderItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
