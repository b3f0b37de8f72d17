package order_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/order"
	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
)

func TestRecordPaymentCeiling(t *testing.T) {
	t.Parallel()

	// total 100, desconto 10, já pago 50: teto de R$ 40,00.
	orderEntity := newTestOrder(100, 10, order.PaymentParcial)
	orderEntity.PaidAmount = 50
	svc, _, _ := newOrderTestService(orderEntity)

	_, err := svc.RecordPayment(context.Background(), orderEntity.Id, &order.RecordPaymentRequest{Amount: 40.01})
	if err == nil {
		t.Fatal("esperado erro para valor acima do saldo devedor")
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("erro = %v, esperado AppError de validação", err)
	}
	if !strings.Contains(appErr.Message, pkg.FormatBRL(40)) {
		t.Errorf("mensagem = %q, deveria conter o máximo %s", appErr.Message, pkg.FormatBRL(40))
	}
}

func TestRecordPaymentExactRemainderSettlesOrder(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 10, order.PaymentParcial)
	orderEntity.PaidAmount = 50
	svc, repo, _ := newOrderTestService(orderEntity)

	payment, err := svc.RecordPayment(context.Background(), orderEntity.Id, &order.RecordPaymentRequest{
		Amount:        40,
		PaymentMethod: "PIX",
	})
	if err != nil {
		t.Fatalf("RecordPayment retornou erro: %v", err)
	}
	if payment.Amount != 40 {
		t.Errorf("valor do pagamento = %v, esperado 40", payment.Amount)
	}

	stored, _ := repo.GetByID(context.Background(), orderEntity.Id)
	if stored.PaidAmount != 90 {
		t.Errorf("acumulado = %v, esperado 90", stored.PaidAmount)
	}
	if stored.PaymentStatus != order.PaymentPago {
		t.Errorf("payment_status = %s, esperado PAGO", stored.PaymentStatus)
	}
}

func TestRecordPartialPayment(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPendente)
	svc, repo, _ := newOrderTestService(orderEntity)

	if _, err := svc.RecordPayment(context.Background(), orderEntity.Id, &order.RecordPaymentRequest{Amount: 30}); err != nil {
		t.Fatalf("RecordPayment retornou erro: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), orderEntity.Id)
	if stored.PaidAmount != 30 {
		t.Errorf("acumulado = %v, esperado 30", stored.PaidAmount)
	}
	if stored.PaymentStatus != order.PaymentParcial {
		t.Errorf("payment_status = %s, esperado PARCIAL", stored.PaymentStatus)
	}
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPendente)
	svc, _, _ := newOrderTestService(orderEntity)

	for _, amount := range []float64{0, -10} {
		if _, err := svc.RecordPayment(context.Background(), orderEntity.Id, &order.RecordPaymentRequest{Amount: amount}); err == nil {
			t.Errorf("valor %v deveria ser rejeitado", amount)
		}
	}
}

func TestRecordPaymentMirrorsDeliveredOrderLedger(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPendente)
	svc, _, engine := newOrderTestService(orderEntity)

	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusEntregue); err != nil {
		t.Fatalf("entrega retornou erro: %v", err)
	}

	if _, err := svc.RecordPayment(context.Background(), orderEntity.Id, &order.RecordPaymentRequest{Amount: 100}); err != nil {
		t.Fatalf("RecordPayment retornou erro: %v", err)
	}

	transaction := engine.byOrder(orderEntity.Id)
	if transaction.Status != ledger.StatusPago {
		t.Errorf("status = %s, esperado PAGO após quitação", transaction.Status)
	}
}

func TestDeletePaymentRevertsOrderState(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPendente)
	svc, repo, engine := newOrderTestService(orderEntity)

	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusEntregue); err != nil {
		t.Fatalf("entrega retornou erro: %v", err)
	}
	payment, err := svc.RecordPayment(context.Background(), orderEntity.Id, &order.RecordPaymentRequest{Amount: 100})
	if err != nil {
		t.Fatalf("RecordPayment retornou erro: %v", err)
	}

	if err := svc.DeletePayment(context.Background(), payment.Id); err != nil {
		t.Fatalf("DeletePayment retornou erro: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), orderEntity.Id)
	if stored.PaidAmount != 0 {
		t.Errorf("acumulado = %v, esperado 0 após estorno", stored.PaidAmount)
	}
	if stored.PaymentStatus != order.PaymentPendente {
		t.Errorf("payment_status = %s, esperado PENDENTE", stored.PaymentStatus)
	}

	transaction := engine.byOrder(orderEntity.Id)
	if transaction.Status != ledger.StatusPendente {
		t.Errorf("status = %s, esperado PENDENTE reespelhado", transaction.Status)
	}

	if _, err := repo.GetPaymentByID(context.Background(), payment.Id); err == nil {
		t.Error("pagamento removido não deveria ser encontrado")
	}
}

func TestDeletePaymentNotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOrderTestService()
	err := svc.DeletePayment(context.Background(), pkg.GenerateULIDObject())
	if !errors.Is(err, appErrors.ErrPaymentNotFound) {
		t.Errorf("erro = %v, esperado ErrPaymentNotFound", err)
	}
}

func TestDeletePaymentTwiceDoesNotDoubleRevert(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPendente)
	svc, repo, _ := newOrderTestService(orderEntity)

	first, err := svc.RecordPayment(context.Background(), orderEntity.Id, &order.RecordPaymentRequest{Amount: 30})
	if err != nil {
		t.Fatalf("RecordPayment retornou erro: %v", err)
	}
	if _, err := svc.RecordPayment(context.Background(), orderEntity.Id, &order.RecordPaymentRequest{Amount: 50}); err != nil {
		t.Fatalf("RecordPayment retornou erro: %v", err)
	}

	if err := svc.DeletePayment(context.Background(), first.Id); err != nil {
		t.Fatalf("DeletePayment retornou erro: %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), orderEntity.Id)
	if stored.PaidAmount != 50 {
		t.Fatalf("acumulado = %v, esperado 50 após o primeiro estorno", stored.PaidAmount)
	}

	// Simula a corrida: a leitura do segundo estorno ainda enxerga o
	// pagamento que o primeiro acabou de remover.
	stale := *first
	repo.getPaymentFn = func(ctx context.Context, paymentID ulid.ULID) (*order.Payment, error) {
		return &stale, nil
	}

	err = svc.DeletePayment(context.Background(), first.Id)
	if !errors.Is(err, appErrors.ErrPaymentNotFound) {
		t.Errorf("erro = %v, esperado ErrPaymentNotFound para estorno repetido", err)
	}

	stored, _ = repo.GetByID(context.Background(), orderEntity.Id)
	if stored.PaidAmount != 50 {
		t.Errorf("acumulado = %v, esperado 50 inalterado", stored.PaidAmount)
	}
	if stored.PaymentStatus != order.PaymentParcial {
		t.Errorf("payment_status = %s, esperado PARCIAL inalterado", stored.PaymentStatus)
	}
}

func TestGetPaymentSummary(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(200, 20, order.PaymentPendente)
	svc, _, _ := newOrderTestService(orderEntity)

	if _, err := svc.RecordPayment(context.Background(), orderEntity.Id, &order.RecordPaymentRequest{Amount: 50}); err != nil {
		t.Fatalf("RecordPayment retornou erro: %v", err)
	}
	if _, err := svc.RecordPayment(context.Background(), orderEntity.Id, &order.RecordPaymentRequest{Amount: 30}); err != nil {
		t.Fatalf("RecordPayment retornou erro: %v", err)
	}

	summary, err := svc.GetPaymentSummary(context.Background(), orderEntity.Id)
	if err != nil {
		t.Fatalf("GetPaymentSummary retornou erro: %v", err)
	}

	if summary.PaidAmount != 80 {
		t.Errorf("acumulado = %v, esperado 80", summary.PaidAmount)
	}
	if summary.PendingAmount != 100 {
		t.Errorf("pendente = %v, esperado 100", summary.PendingAmount)
	}
	if summary.PaymentCount != 2 {
		t.Errorf("quantidade = %d, esperado 2", summary.PaymentCount)
	}
	if summary.PaymentStatus != order.PaymentParcial {
		t.Errorf("payment_status = %s, esperado PARCIAL", summary.PaymentStatus)
	}
}
