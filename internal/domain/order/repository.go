package order

import (
	"context"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Filters struct {
	Status        OrderStatus
	PaymentStatus PaymentStatus
	ClientId      *ulid.ULID
}

type Repository interface {
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	UpdateWithTx(ctx context.Context, tx interface{}, order *Order) error
	GetByID(ctx context.Context, orderID ulid.ULID) (*Order, error)

	// GetByIDForUpdate trava a linha do pedido; exige transação aberta. O lock
	// serializa entregas concorrentes do mesmo pedido.
	GetByIDForUpdate(ctx context.Context, tx interface{}, orderID ulid.ULID) (*Order, error)

	GetAll(ctx context.Context, filters *Filters, pagination *pkg.PaginationParams) ([]*Order, int64, error)

	CreatePaymentWithTx(ctx context.Context, tx interface{}, payment *Payment) error

	// DeletePaymentWithTx retorna gorm.ErrRecordNotFound quando a linha já
	// foi removida; estornos concorrentes do mesmo pagamento abortam assim.
	DeletePaymentWithTx(ctx context.Context, tx interface{}, paymentID ulid.ULID) error
	GetPaymentByID(ctx context.Context, paymentID ulid.ULID) (*Payment, error)
	GetPaymentsByOrderID(ctx context.Context, orderID ulid.ULID) ([]*Payment, error)
	CountPaymentsByOrderID(ctx context.Context, orderID ulid.ULID) (int64, error)
}
