package account

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, accountID ulid.ULID) (*Account, error)
	GetByCode(ctx context.Context, code string) (*Account, error)
	GetAll(ctx context.Context, onlyActive bool) ([]*Account, error)
	GetTotalBalance(ctx context.Context) (float64, error)

	// ApplyBalanceDeltaWithTx soma um valor com sinal ao saldo corrente, de
	// forma atômica no banco (UPDATE ... SET balance = balance + ?), dentro
	// da transação de banco recebida.
	ApplyBalanceDeltaWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID, delta float64) error
}
