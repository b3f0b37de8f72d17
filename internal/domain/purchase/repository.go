package purchase

import (
	"context"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	BeginTx(ctx context.Context) (interface{}, error)
	CommitTx(tx interface{}) error
	RollbackTx(tx interface{}) error

	CreateWithTx(ctx context.Context, tx interface{}, purchase *Purchase) error
	CreateInstallmentsWithTx(ctx context.Context, tx interface{}, installments []*Installment) error

	GetByID(ctx context.Context, purchaseID ulid.ULID) (*Purchase, error)
	GetAll(ctx context.Context, pagination *pkg.PaginationParams) ([]*Purchase, int64, error)

	GetInstallmentByID(ctx context.Context, installmentID ulid.ULID) (*Installment, error)
	GetInstallmentsByPurchaseID(ctx context.Context, purchaseID ulid.ULID) ([]*Installment, error)
	UpdateInstallment(ctx context.Context, installment *Installment) error
}
