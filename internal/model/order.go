package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCOD, PaymentOnline:
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// 訂單建立後 items 不變動，只有 status 會更新
type Order struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Items         []OrderItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Address       Address          `gorm:"serializer:json;type:jsonb;not null" json:"address"`
	Amount        decimal.Decimal  `gorm:"not null;type:decimal(12,2)" json:"amount"`
	TotalAmount   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalAmount,omitempty"`
	PaymentMethod PaymentMethod    `gorm:"not null;type:varchar(20)" json:"payment_method"`
	PaymentRef    string           `gorm:"type:varchar(255)" json:"-"`
	Status        OrderStatus      `gorm:"not null;type:varchar(20);default:pending" json:"status"`
	OrderDate     time.Time        `gorm:"not null" json:"order_date"`
	BaseModel
}

type OrderItem struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"product"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
}
