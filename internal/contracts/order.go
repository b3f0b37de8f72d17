package contracts

import (
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/order"
)

type OrderCreateRequest struct {
	ClientID      *string `json:"client_id"`
	TotalValue    float64 `json:"total_value" binding:"required,gt=0"`
	Discount      float64 `json:"discount" binding:"gte=0"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderPaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type OrderPaymentCreateRequest struct {
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	PaymentMethod string     `json:"payment_method"`
	Notes         string     `json:"notes"`
	UserID        *string    `json:"user_id"`
	PaymentDate   *time.Time `json:"payment_date"`
}

type OrderCreateResponse struct {
	Message string      `json:"message"`
	Order   order.Order `json:"order"`
}

type OrderSingleResponse struct {
	Order *order.Order `json:"order"`
}

type OrderPaymentCreateResponse struct {
	Message string        `json:"message"`
	Payment order.Payment `json:"payment"`
}

type OrderPaymentListResponse struct {
	Payments []*order.Payment `json:"payments"`
}

type PaymentSummaryResponse struct {
	Summary *order.PaymentSummary `json:"summary"`
}
