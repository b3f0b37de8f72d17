package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/account"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/logger"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

const maxCodeRetries = 3

type Service struct {
	Repository         Repository
	AccountRepository  account.Repository
	CategoryRepository category.Repository
	SummaryRepository  SummaryRepository
}

func NewService(repo Repository, accountRepo account.Repository, categoryRepo category.Repository, summaryRepo SummaryRepository) *Service {
	return &Service{
		Repository:         repo,
		AccountRepository:  accountRepo,
		CategoryRepository: categoryRepo,
		SummaryRepository:  summaryRepo,
	}
}

func (s *Service) validateNew(ctx context.Context, transaction *Transaction) error {
	if transaction.Amount <= 0 {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	if !transaction.Type.IsValid() {
		return appErrors.NewValidationError("type", "tipo de transação inválido")
	}

	if transaction.Status != "" && !transaction.Status.IsValid() {
		return appErrors.NewValidationError("status", "status inválido")
	}

	if strings.TrimSpace(transaction.Description) == "" {
		return appErrors.NewValidationError("description", "é obrigatório")
	}

	if transaction.Type.RequiresCategory() {
		if transaction.CategoryId == nil {
			return appErrors.NewValidationError("category_id", "é obrigatório para receitas e despesas")
		}
	} else if transaction.CategoryId != nil {
		return appErrors.NewValidationError("category_id", "não se aplica a transferências e depósitos")
	}

	if transaction.Type.RequiresDestination() {
		if transaction.DestinationAccountId == nil {
			return appErrors.NewValidationError("destination_account_id", "é obrigatório para transferências e depósitos")
		}
		if *transaction.DestinationAccountId == transaction.AccountId {
			return appErrors.NewValidationError("destination_account_id", "deve ser diferente da conta de origem")
		}
	} else if transaction.DestinationAccountId != nil {
		return appErrors.NewValidationError("destination_account_id", "não se aplica a este tipo de transação")
	}

	if _, err := s.AccountRepository.GetByID(ctx, transaction.AccountId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrAccountNotFound
		}
		return appErrors.NewDatabaseError(err)
	}

	if transaction.DestinationAccountId != nil {
		if _, err := s.AccountRepository.GetByID(ctx, *transaction.DestinationAccountId); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appErrors.ErrAccountNotFound
			}
			return appErrors.NewDatabaseError(err)
		}
	}

	if transaction.CategoryId != nil {
		if _, err := s.CategoryRepository.GetByID(ctx, *transaction.CategoryId); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appErrors.ErrCategoryNotFound
			}
			return appErrors.NewDatabaseError(err)
		}
	}

	return nil
}

func (s *Service) prepare(transaction *Transaction) {
	now := time.Now()

	if pkg.IsEmptyULID(transaction.Id) {
		transaction.Id = pkg.GenerateULIDObject()
	}
	if transaction.Code == "" {
		transaction.Code = pkg.NextTransactionCode()
	}
	if transaction.Status == "" {
		transaction.Status = StatusPendente
	}
	if transaction.TransactionDate.IsZero() {
		transaction.TransactionDate = now
	}
	if transaction.Status == StatusPago && transaction.PaymentDate == nil {
		paymentDate := now
		transaction.PaymentDate = &paymentDate
	}
	if transaction.Status != StatusPago {
		transaction.PaymentDate = nil
	}

	transaction.CreatedAt = now
	transaction.UpdatedAt = now
}

// applyEffectWithTx aplica a tabela de efeitos nos saldos. direction +1
// aplica o efeito (entrada em PAGO), -1 reverte (saída de PAGO).
func (s *Service) applyEffectWithTx(ctx context.Context, tx interface{}, transaction *Transaction, direction float64) error {
	sourceDelta, destinationDelta := BalanceEffect(transaction.Type, transaction.Amount)

	if sourceDelta != 0 {
		if err := s.AccountRepository.ApplyBalanceDeltaWithTx(ctx, tx, transaction.AccountId, direction*sourceDelta); err != nil {
			return appErrors.NewDatabaseError(err)
		}
	}

	if transaction.DestinationAccountId != nil && destinationDelta != 0 {
		if err := s.AccountRepository.ApplyBalanceDeltaWithTx(ctx, tx, *transaction.DestinationAccountId, direction*destinationDelta); err != nil {
			return appErrors.NewDatabaseError(err)
		}
	}

	return nil
}

// CreateTransaction cria o lançamento e, se ele já nasce PAGO, aplica o
// efeito nos saldos dentro da mesma transação de banco. Colisão no código
// gerado reinicia a tentativa com um código novo.
func (s *Service) CreateTransaction(ctx context.Context, transaction *Transaction) error {
	if err := s.validateNew(ctx, transaction); err != nil {
		return err
	}

	s.prepare(transaction)

	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		tx, err := s.Repository.BeginTx(ctx)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}

		err = s.insertWithEffect(ctx, tx, transaction)
		if err == nil {
			if commitErr := s.Repository.CommitTx(tx); commitErr != nil {
				return appErrors.NewDatabaseError(commitErr)
			}
			return nil
		}

		_ = s.Repository.RollbackTx(tx)

		if isOrderUniqueViolation(err) {
			return appErrors.ErrOrderAlreadyBilled
		}
		if isCodeUniqueViolation(err) {
			logger.Warn().Str("code", transaction.Code).Msg("colisão de código de transação, gerando novo")
			transaction.Code = pkg.NextTransactionCode()
			continue
		}
		return appErrors.FromError(err)
	}

	return appErrors.NewAppError("TRANSACTION_CODE_EXHAUSTED", "Não foi possível gerar um código único para a transação", 500)
}

// CreateTransactionWithTx cria o lançamento dentro de uma transação de banco
// aberta pelo chamador. Sem retry de código: qualquer violação sobe e o
// chamador desfaz o trabalho inteiro.
func (s *Service) CreateTransactionWithTx(ctx context.Context, tx interface{}, transaction *Transaction) error {
	if err := s.validateNew(ctx, transaction); err != nil {
		return err
	}

	s.prepare(transaction)

	if err := s.insertWithEffect(ctx, tx, transaction); err != nil {
		if isOrderUniqueViolation(err) {
			return appErrors.ErrOrderAlreadyBilled
		}
		return appErrors.FromError(err)
	}
	return nil
}

func (s *Service) insertWithEffect(ctx context.Context, tx interface{}, transaction *Transaction) error {
	if err := s.Repository.CreateWithTx(ctx, tx, transaction); err != nil {
		return err
	}
	if transaction.Status == StatusPago {
		return s.applyEffectWithTx(ctx, tx, transaction, +1)
	}
	return nil
}

// UpdateTransactionStatus faz a transição de status com a álgebra de saldos:
// sair de PAGO reverte o efeito, entrar em PAGO aplica. Transições entre
// estados não pagos não tocam saldo algum.
func (s *Service) UpdateTransactionStatus(ctx context.Context, transactionID ulid.ULID, newStatus Status, paymentDate *time.Time) error {
	if !newStatus.IsValid() {
		return appErrors.NewValidationError("status", "status inválido")
	}

	tx, err := s.Repository.BeginTx(ctx)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	if err := s.changeStatusWithTx(ctx, tx, transactionID, newStatus, paymentDate); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return err
	}

	if err := s.Repository.CommitTx(tx); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// UpdateStatusWithTx é a transição de status para chamadores que já mantêm
// uma transação de banco aberta (sincronização de pedidos, parcelas).
func (s *Service) UpdateStatusWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, newStatus Status, paymentDate *time.Time) error {
	if !newStatus.IsValid() {
		return appErrors.NewValidationError("status", "status inválido")
	}
	return s.changeStatusWithTx(ctx, tx, transactionID, newStatus, paymentDate)
}

func (s *Service) changeStatusWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, newStatus Status, paymentDate *time.Time) error {
	current, err := s.Repository.GetByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrTransactionNotFound
		}
		return appErrors.NewDatabaseError(err)
	}

	if current.Status == newStatus {
		return nil
	}

	wasPago := current.Status == StatusPago
	willBePago := newStatus == StatusPago

	if wasPago && !willBePago {
		if err := s.applyEffectWithTx(ctx, tx, current, -1); err != nil {
			return err
		}
	}
	if !wasPago && willBePago {
		if err := s.applyEffectWithTx(ctx, tx, current, +1); err != nil {
			return err
		}
	}

	var newPaymentDate *time.Time
	if willBePago {
		if paymentDate != nil {
			newPaymentDate = paymentDate
		} else {
			now := time.Now()
			newPaymentDate = &now
		}
	}

	if err := s.Repository.UpdateStatusWithTx(ctx, tx, transactionID, newStatus, newPaymentDate); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// FindByOrderForUpdate busca, com lock de linha, a transação vinculada a um
// pedido. Retorna nil sem erro quando o pedido ainda não foi lançado.
func (s *Service) FindByOrderForUpdate(ctx context.Context, tx interface{}, orderID ulid.ULID) (*Transaction, error) {
	transaction, err := s.Repository.GetByOrderIDForUpdate(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return transaction, nil
}

func (s *Service) BeginTx(ctx context.Context) (interface{}, error) {
	return s.Repository.BeginTx(ctx)
}

func (s *Service) CommitTx(tx interface{}) error {
	return s.Repository.CommitTx(tx)
}

func (s *Service) RollbackTx(tx interface{}) error {
	return s.Repository.RollbackTx(tx)
}

type UpdateTransactionRequest struct {
	Description     *string
	Amount          *float64
	CategoryId      *ulid.ULID
	PaymentMethod   *string
	TransactionDate *time.Time
	DueDate         *time.Time
	Notes           *string
	ClientId        *ulid.ULID
	SupplierId      *ulid.ULID
}

// UpdateTransaction altera campos descritivos. Status tem endpoint próprio;
// valor e contas de uma transação PAGA são congelados até ela voltar para
// PENDENTE, senão o saldo aplicado ficaria inconsistente com a linha.
func (s *Service) UpdateTransaction(ctx context.Context, transactionID ulid.ULID, req *UpdateTransactionRequest) (*Transaction, error) {
	current, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if current.Status == StatusPago && req.Amount != nil && *req.Amount != current.Amount {
		return nil, appErrors.NewValidationError("amount", "transação paga não pode ter o valor alterado; reverta o status antes")
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		current.Amount = *req.Amount
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, appErrors.NewValidationError("description", "não pode ser vazio")
		}
		current.Description = description
	}

	if req.CategoryId != nil {
		if !current.Type.RequiresCategory() {
			return nil, appErrors.NewValidationError("category_id", "não se aplica a este tipo de transação")
		}
		if _, err := s.CategoryRepository.GetByID(ctx, *req.CategoryId); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, appErrors.ErrCategoryNotFound
			}
			return nil, appErrors.NewDatabaseError(err)
		}
		current.CategoryId = req.CategoryId
	}

	if req.PaymentMethod != nil {
		current.PaymentMethod = *req.PaymentMethod
	}
	if req.TransactionDate != nil {
		current.TransactionDate = *req.TransactionDate
	}
	if req.DueDate != nil {
		current.DueDate = req.DueDate
	}
	if req.Notes != nil {
		current.Notes = *req.Notes
	}
	if req.ClientId != nil {
		current.ClientId = req.ClientId
	}
	if req.SupplierId != nil {
		current.SupplierId = req.SupplierId
	}

	current.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, current); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return current, nil
}

// DeleteTransaction remove um lançamento não pago. Lançamentos PAGOS têm
// efeito aplicado em saldo e não podem sumir do histórico: o chamador deve
// revertê-los para PENDENTE ou CANCELADO antes.
func (s *Service) DeleteTransaction(ctx context.Context, transactionID ulid.ULID) error {
	tx, err := s.Repository.BeginTx(ctx)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	current, err := s.Repository.GetByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		_ = s.Repository.RollbackTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrTransactionNotFound
		}
		return appErrors.NewDatabaseError(err)
	}

	if current.Status == StatusPago {
		_ = s.Repository.RollbackTx(tx)
		return appErrors.NewValidationError("status", "transação paga não pode ser removida; reverta o status antes")
	}

	if err := s.Repository.DeleteWithTx(ctx, tx, transactionID); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return appErrors.NewDatabaseError(err)
	}

	if err := s.Repository.CommitTx(tx); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetTransactionByID(ctx context.Context, transactionID ulid.ULID) (*Transaction, error) {
	transaction, err := s.Repository.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	transaction.Status = transaction.EffectiveStatus(time.Now())
	return transaction, nil
}

func (s *Service) GetAllTransactions(ctx context.Context, filters *Filters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	transactions, total, err := s.Repository.GetAll(ctx, filters, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}

	now := time.Now()
	for _, transaction := range transactions {
		transaction.Status = transaction.EffectiveStatus(now)
	}

	return transactions, total, nil
}

func (s *Service) GetFinancialSummary(ctx context.Context, filters *SummaryFilters) (*FinancialSummary, error) {
	summary, err := s.SummaryRepository.GetFinancialSummary(ctx, filters)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	totalBalance, err := s.AccountRepository.GetTotalBalance(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	summary.TotalBalance = totalBalance

	return summary, nil
}

func (s *Service) GetCashFlow(ctx context.Context, startDate, endDate time.Time) ([]*CashFlowEntry, error) {
	if endDate.Before(startDate) {
		return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data inicial")
	}
	entries, err := s.SummaryRepository.GetCashFlow(ctx, startDate, endDate)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return entries, nil
}

func (s *Service) GetCategoryBreakdown(ctx context.Context, categoryType category.Types, startDate, endDate time.Time) ([]*CategoryBreakdownEntry, error) {
	if !categoryType.IsValid() {
		return nil, appErrors.NewValidationError("type", "deve ser RECEITA ou DESPESA")
	}
	if endDate.Before(startDate) {
		return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data inicial")
	}
	entries, err := s.SummaryRepository.GetCategoryBreakdown(ctx, string(categoryType), startDate, endDate)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return entries, nil
}

func isOrderUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return isUniqueConstraintError(err) && strings.Contains(errStr, "order_id")
}

func isCodeUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return isUniqueConstraintError(err) && strings.Contains(errStr, "code")
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "unique constraint") ||
		strings.Contains(errStr, "violates unique constraint")
}
