package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/account"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/logger"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// LedgerEngine é a fatia do motor financeiro que a sincronização de pedidos
// usa. Toda a álgebra de saldos fica do lado do motor; aqui só se decide
// quando criar e para qual status levar a transação vinculada.
type LedgerEngine interface {
	BeginTx(ctx context.Context) (interface{}, error)
	CommitTx(tx interface{}) error
	RollbackTx(tx interface{}) error
	CreateTransactionWithTx(ctx context.Context, tx interface{}, transaction *ledger.Transaction) error
	UpdateStatusWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, status ledger.Status, paymentDate *time.Time) error
	FindByOrderForUpdate(ctx context.Context, tx interface{}, orderID ulid.ULID) (*ledger.Transaction, error)
}

type AccountResolver interface {
	FindOrCreateByCode(ctx context.Context, code, name string, accType account.AccountType) (*account.Account, error)
}

type CategoryResolver interface {
	FindOrCreateByCode(ctx context.Context, code, name string, catType category.Types) (*category.Category, error)
}

type Service struct {
	Repository Repository
	Ledger     LedgerEngine
	Accounts   AccountResolver
	Categories CategoryResolver
}

func NewService(repo Repository, ledgerEngine LedgerEngine, accounts AccountResolver, categories CategoryResolver) *Service {
	return &Service{
		Repository: repo,
		Ledger:     ledgerEngine,
		Accounts:   accounts,
		Categories: categories,
	}
}

type CreateOrderRequest struct {
	ClientId      *ulid.ULID
	TotalValue    float64
	Discount      float64
	PaymentMethod string
	Notes         string
}

func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	if req.TotalValue <= 0 {
		return nil, appErrors.NewValidationError("total_value", "deve ser maior que zero")
	}
	if req.Discount < 0 {
		return nil, appErrors.NewValidationError("discount", "não pode ser negativo")
	}
	if req.Discount > req.TotalValue {
		return nil, appErrors.NewValidationError("discount", "não pode ser maior que o valor total")
	}

	now := time.Now()
	orderEntity := &Order{
		Id:            pkg.GenerateULIDObject(),
		ClientId:      req.ClientId,
		TotalValue:    req.TotalValue,
		Discount:      req.Discount,
		PaidAmount:    0,
		Status:        StatusPendente,
		PaymentStatus: PaymentPendente,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repository.Create(ctx, orderEntity); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return orderEntity, nil
}

func (s *Service) GetOrderByID(ctx context.Context, orderID ulid.ULID) (*Order, error) {
	orderEntity, err := s.Repository.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrOrderNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return orderEntity, nil
}

func (s *Service) ListOrders(ctx context.Context, filters *Filters, pagination *pkg.PaginationParams) ([]*Order, int64, error) {
	orders, total, err := s.Repository.GetAll(ctx, filters, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return orders, total, nil
}

// UpdateOrderStatus muda o status do pedido e sincroniza o razão na mesma
// transação de banco: entrega cria (no máximo uma vez) a receita vinculada,
// cancelamento cancela a transação existente revertendo saldos se preciso.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID ulid.ULID, newStatus OrderStatus) (*Order, error) {
	if !newStatus.IsValid() {
		return nil, appErrors.NewValidationError("status", "status de pedido inválido")
	}

	// Resolve os padrões fora da transação: uma violação de unicidade no
	// upsert abortaria a transação inteira no postgres.
	var (
		defaultAccount  *account.Account
		defaultCategory *category.Category
	)
	if newStatus == StatusEntregue {
		var err error
		defaultAccount, err = s.Accounts.FindOrCreateByCode(ctx, account.CodeCaixa, "Caixa", account.TypeDinheiro)
		if err != nil {
			return nil, err
		}
		defaultCategory, err = s.Categories.FindOrCreateByCode(ctx, category.CodeVendasGas, "Vendas de Gás", category.Receita)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.Ledger.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	orderEntity, err := s.Repository.GetByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		_ = s.Ledger.RollbackTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrOrderNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	if orderEntity.Status == newStatus {
		_ = s.Ledger.RollbackTx(tx)
		return orderEntity, nil
	}

	orderEntity.Status = newStatus
	orderEntity.UpdatedAt = time.Now()

	switch newStatus {
	case StatusEntregue:
		deliveredAt := time.Now()
		orderEntity.DeliveredAt = &deliveredAt
		if err := s.ensureTransactionWithTx(ctx, tx, orderEntity, defaultAccount, defaultCategory); err != nil {
			_ = s.Ledger.RollbackTx(tx)
			return nil, err
		}
	case StatusCancelado:
		if err := s.cancelTransactionWithTx(ctx, tx, orderEntity); err != nil {
			_ = s.Ledger.RollbackTx(tx)
			return nil, err
		}
	}

	if err := s.Repository.UpdateWithTx(ctx, tx, orderEntity); err != nil {
		_ = s.Ledger.RollbackTx(tx)
		return nil, appErrors.NewDatabaseError(err)
	}

	if err := s.Ledger.CommitTx(tx); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return orderEntity, nil
}

// ensureTransactionWithTx garante exatamente uma transação de razão para o
// pedido. A linha do pedido já está travada e o índice único em order_id
// cobre a corrida que o lock não pegar.
func (s *Service) ensureTransactionWithTx(ctx context.Context, tx interface{}, orderEntity *Order, defaultAccount *account.Account, defaultCategory *category.Category) error {
	existing, err := s.Ledger.FindByOrderForUpdate(ctx, tx, orderEntity.Id)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Debug().Str("orderId", orderEntity.Id.String()).Msg("pedido já possui transação vinculada")
		return nil
	}

	status := ledger.StatusPendente
	if orderEntity.PaymentStatus != PaymentPendente {
		status = ledger.StatusPago
	}

	orderID := orderEntity.Id
	categoryID := defaultCategory.Id
	transaction := &ledger.Transaction{
		Type:          ledger.Receita,
		CategoryId:    &categoryID,
		AccountId:     defaultAccount.Id,
		OrderId:       &orderID,
		ClientId:      orderEntity.ClientId,
		Description:   fmt.Sprintf("Venda - Pedido %s", orderEntity.Id.String()),
		Amount:        orderEntity.NetValue(),
		PaymentMethod: orderEntity.PaymentMethod,
		Status:        status,
	}

	return s.Ledger.CreateTransactionWithTx(ctx, tx, transaction)
}

func (s *Service) cancelTransactionWithTx(ctx context.Context, tx interface{}, orderEntity *Order) error {
	existing, err := s.Ledger.FindByOrderForUpdate(ctx, tx, orderEntity.Id)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	return s.Ledger.UpdateStatusWithTx(ctx, tx, existing.Id, ledger.StatusCancelado, nil)
}

// syncPaymentStatusWithTx espelha o estado de cobrança do pedido na
// transação de razão vinculada, se houver.
func (s *Service) syncPaymentStatusWithTx(ctx context.Context, tx interface{}, orderEntity *Order) error {
	existing, err := s.Ledger.FindByOrderForUpdate(ctx, tx, orderEntity.Id)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	if orderEntity.PaymentStatus == PaymentPago {
		now := time.Now()
		return s.Ledger.UpdateStatusWithTx(ctx, tx, existing.Id, ledger.StatusPago, &now)
	}
	return s.Ledger.UpdateStatusWithTx(ctx, tx, existing.Id, ledger.StatusPendente, nil)
}

// UpdateOrderPaymentStatus muda o estado de cobrança manualmente e espelha a
// mudança na transação vinculada dentro do mesmo escopo atômico.
func (s *Service) UpdateOrderPaymentStatus(ctx context.Context, orderID ulid.ULID, newStatus PaymentStatus) (*Order, error) {
	if !newStatus.IsValid() {
		return nil, appErrors.NewValidationError("payment_status", "status de pagamento inválido")
	}

	tx, err := s.Ledger.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	orderEntity, err := s.Repository.GetByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		_ = s.Ledger.RollbackTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrOrderNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	if orderEntity.PaymentStatus == newStatus {
		_ = s.Ledger.RollbackTx(tx)
		return orderEntity, nil
	}

	orderEntity.PaymentStatus = newStatus
	orderEntity.UpdatedAt = time.Now()

	if err := s.syncPaymentStatusWithTx(ctx, tx, orderEntity); err != nil {
		_ = s.Ledger.RollbackTx(tx)
		return nil, err
	}

	if err := s.Repository.UpdateWithTx(ctx, tx, orderEntity); err != nil {
		_ = s.Ledger.RollbackTx(tx)
		return nil, appErrors.NewDatabaseError(err)
	}

	if err := s.Ledger.CommitTx(tx); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return orderEntity, nil
}
