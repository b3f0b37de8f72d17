package ledger

import (
	"context"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Filters struct {
	StartDate  *time.Time
	EndDate    *time.Time
	AccountId  *ulid.ULID
	CategoryId *ulid.ULID
	OrderId    *ulid.ULID
	ClientId   *ulid.ULID
	Type       Types
	Status     Status
}

type Repository interface {
	BeginTx(ctx context.Context) (interface{}, error)
	CommitTx(tx interface{}) error
	RollbackTx(tx interface{}) error

	CreateWithTx(ctx context.Context, tx interface{}, transaction *Transaction) error
	UpdateStatusWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, status Status, paymentDate *time.Time) error
	DeleteWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) error

	// Update cobre só os campos descritivos; status e payment_date passam
	// exclusivamente por UpdateStatusWithTx.
	Update(ctx context.Context, transaction *Transaction) error
	GetByID(ctx context.Context, transactionID ulid.ULID) (*Transaction, error)

	// Leituras com FOR UPDATE; exigem transação aberta.
	GetByIDForUpdate(ctx context.Context, tx interface{}, transactionID ulid.ULID) (*Transaction, error)
	GetByOrderIDForUpdate(ctx context.Context, tx interface{}, orderID ulid.ULID) (*Transaction, error)

	GetByOrderID(ctx context.Context, orderID ulid.ULID) (*Transaction, error)
	GetAll(ctx context.Context, filters *Filters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
}
