package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type RecordPaymentRequest struct {
	Amount        float64
	PaymentMethod string
	Notes         string
	UserId        *ulid.ULID
	PaymentDate   *time.Time
}

// RecordPayment registra um recebimento contra o pedido. O teto é o saldo
// devedor (total - desconto - já pago); acima disso a operação é rejeitada
// com o máximo permitido na mensagem. Inserção do pagamento, acumulado do
// pedido e espelhamento do razão acontecem na mesma transação de banco.
func (s *Service) RecordPayment(ctx context.Context, orderID ulid.ULID, req *RecordPaymentRequest) (*Payment, error) {
	if req.Amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
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

	maxAllowed := pkg.RoundCents(orderEntity.RemainingValue())
	if pkg.RoundCents(req.Amount) > maxAllowed {
		_ = s.Ledger.RollbackTx(tx)
		return nil, appErrors.NewValidationError("amount",
			fmt.Sprintf("valor excede o máximo permitido de %s", pkg.FormatBRL(maxAllowed)))
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := &Payment{
		Id:            pkg.GenerateULIDObject(),
		OrderId:       orderID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		UserId:        req.UserId,
		PaymentDate:   paymentDate,
		CreatedAt:     time.Now(),
	}

	if err := s.Repository.CreatePaymentWithTx(ctx, tx, payment); err != nil {
		_ = s.Ledger.RollbackTx(tx)
		return nil, appErrors.NewDatabaseError(err)
	}

	orderEntity.PaidAmount = pkg.RoundCents(orderEntity.PaidAmount + req.Amount)
	orderEntity.PaymentStatus = derivePaymentStatus(orderEntity)
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
	return payment, nil
}

// DeletePayment remove um recebimento e devolve o valor ao saldo devedor do
// pedido, reespelhando o razão, tudo no mesmo escopo atômico. Estornos
// concorrentes serializam no lock do pedido; o perdedor encontra a linha já
// removida e aborta sem decrementar o acumulado de novo.
func (s *Service) DeletePayment(ctx context.Context, paymentID ulid.ULID) error {
	payment, err := s.Repository.GetPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrPaymentNotFound
		}
		return appErrors.NewDatabaseError(err)
	}

	tx, err := s.Ledger.BeginTx(ctx)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	orderEntity, err := s.Repository.GetByIDForUpdate(ctx, tx, payment.OrderId)
	if err != nil {
		_ = s.Ledger.RollbackTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrOrderNotFound
		}
		return appErrors.NewDatabaseError(err)
	}

	if err := s.Repository.DeletePaymentWithTx(ctx, tx, paymentID); err != nil {
		_ = s.Ledger.RollbackTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrPaymentNotFound
		}
		return appErrors.NewDatabaseError(err)
	}

	orderEntity.PaidAmount = pkg.RoundCents(orderEntity.PaidAmount - payment.Amount)
	if orderEntity.PaidAmount < 0 {
		orderEntity.PaidAmount = 0
	}
	orderEntity.PaymentStatus = derivePaymentStatus(orderEntity)
	orderEntity.UpdatedAt = time.Now()

	if err := s.syncPaymentStatusWithTx(ctx, tx, orderEntity); err != nil {
		_ = s.Ledger.RollbackTx(tx)
		return err
	}

	if err := s.Repository.UpdateWithTx(ctx, tx, orderEntity); err != nil {
		_ = s.Ledger.RollbackTx(tx)
		return appErrors.NewDatabaseError(err)
	}

	if err := s.Ledger.CommitTx(tx); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetPaymentsByOrder(ctx context.Context, orderID ulid.ULID) ([]*Payment, error) {
	if _, err := s.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	payments, err := s.Repository.GetPaymentsByOrderID(ctx, orderID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return payments, nil
}

func (s *Service) GetPaymentSummary(ctx context.Context, orderID ulid.ULID) (*PaymentSummary, error) {
	orderEntity, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	count, err := s.Repository.CountPaymentsByOrderID(ctx, orderID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return &PaymentSummary{
		OrderId:       orderEntity.Id,
		TotalValue:    orderEntity.TotalValue,
		Discount:      orderEntity.Discount,
		PaidAmount:    orderEntity.PaidAmount,
		PendingAmount: pkg.RoundCents(orderEntity.RemainingValue()),
		PaymentStatus: orderEntity.PaymentStatus,
		PaymentCount:  count,
	}, nil
}

func derivePaymentStatus(orderEntity *Order) PaymentStatus {
	switch {
	case pkg.RoundCents(orderEntity.PaidAmount) >= pkg.RoundCents(orderEntity.NetValue()):
		return PaymentPago
	case orderEntity.PaidAmount > 0:
		return PaymentParcial
	default:
		return PaymentPendente
	}
}
