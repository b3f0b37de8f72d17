package order

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type OrderStatus string

const (
	StatusPendente  OrderStatus = "PENDENTE"
	StatusEmRota    OrderStatus = "EM_ROTA"
	StatusEntregue  OrderStatus = "ENTREGUE"
	StatusCancelado OrderStatus = "CANCELADO"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPendente, StatusEmRota, StatusEntregue, StatusCancelado:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPendente PaymentStatus = "PENDENTE"
	PaymentParcial  PaymentStatus = "PARCIAL"
	PaymentPago     PaymentStatus = "PAGO"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPendente, PaymentParcial, PaymentPago:
		return true
	}
	return false
}

// Order é o pedido de venda. TotalValue e Discount definem o valor líquido
// devido; PaidAmount é o acumulado dos recebimentos registrados e é mantido
// na mesma transação de banco que grava cada pagamento.
type Order struct {
	Id            ulid.ULID     `json:"id"`
	ClientId      *ulid.ULID    `json:"clientId,omitempty"`
	TotalValue    float64       `json:"totalValue"`
	Discount      float64       `json:"discount"`
	PaidAmount    float64       `json:"paidAmount"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	DeliveredAt   *time.Time    `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// NetValue é o valor devido do pedido já com desconto.
func (o *Order) NetValue() float64 {
	return o.TotalValue - o.Discount
}

// RemainingValue é o teto para novos recebimentos.
func (o *Order) RemainingValue() float64 {
	return o.NetValue() - o.PaidAmount
}

// Payment é um recebimento parcial contra o pedido. O registro é append-only;
// a remoção reverte o acumulado do pedido na mesma transação.
type Payment struct {
	Id            ulid.ULID  `json:"id"`
	OrderId       ulid.ULID  `json:"orderId"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"paymentMethod"`
	Notes         string     `json:"notes,omitempty"`
	UserId        *ulid.ULID `json:"userId,omitempty"`
	PaymentDate   time.Time  `json:"paymentDate"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// PaymentSummary é a projeção de leitura do estado de cobrança do pedido.
type PaymentSummary struct {
	OrderId       ulid.ULID     `json:"orderId"`
	TotalValue    float64       `json:"totalValue"`
	Discount      float64       `json:"discount"`
	PaidAmount    float64       `json:"paidAmount"`
	PendingAmount float64       `json:"pendingAmount"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentCount  int64         `json:"paymentCount"`
}
