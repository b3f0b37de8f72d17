package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/account"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/order"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type fakeOrderRepository struct {
	orders       map[string]*order.Order
	payments     map[string]*order.Payment
	getPaymentFn func(ctx context.Context, paymentID ulid.ULID) (*order.Payment, error)
}

func newFakeOrderRepository(orders ...*order.Order) *fakeOrderRepository {
	f := &fakeOrderRepository{
		orders:   make(map[string]*order.Order),
		payments: make(map[string]*order.Payment),
	}
	for _, o := range orders {
		copied := *o
		f.orders[o.Id.String()] = &copied
	}
	return f
}

func (f *fakeOrderRepository) Create(ctx context.Context, o *order.Order) error {
	copied := *o
	f.orders[o.Id.String()] = &copied
	return nil
}

func (f *fakeOrderRepository) Update(ctx context.Context, o *order.Order) error {
	copied := *o
	f.orders[o.Id.String()] = &copied
	return nil
}

func (f *fakeOrderRepository) UpdateWithTx(ctx context.Context, tx interface{}, o *order.Order) error {
	return f.Update(ctx, o)
}

func (f *fakeOrderRepository) GetByID(ctx context.Context, orderID ulid.ULID) (*order.Order, error) {
	stored, ok := f.orders[orderID.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeOrderRepository) GetByIDForUpdate(ctx context.Context, tx interface{}, orderID ulid.ULID) (*order.Order, error) {
	return f.GetByID(ctx, orderID)
}

func (f *fakeOrderRepository) GetAll(ctx context.Context, filters *order.Filters, pagination *pkg.PaginationParams) ([]*order.Order, int64, error) {
	out := make([]*order.Order, 0, len(f.orders))
	for _, stored := range f.orders {
		copied := *stored
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepository) CreatePaymentWithTx(ctx context.Context, tx interface{}, p *order.Payment) error {
	copied := *p
	f.payments[p.Id.String()] = &copied
	return nil
}

func (f *fakeOrderRepository) DeletePaymentWithTx(ctx context.Context, tx interface{}, paymentID ulid.ULID) error {
	if _, ok := f.payments[paymentID.String()]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.payments, paymentID.String())
	return nil
}

func (f *fakeOrderRepository) GetPaymentByID(ctx context.Context, paymentID ulid.ULID) (*order.Payment, error) {
	if f.getPaymentFn != nil {
		return f.getPaymentFn(ctx, paymentID)
	}
	stored, ok := f.payments[paymentID.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeOrderRepository) GetPaymentsByOrderID(ctx context.Context, orderID ulid.ULID) ([]*order.Payment, error) {
	out := make([]*order.Payment, 0)
	for _, stored := range f.payments {
		if stored.OrderId == orderID {
			copied := *stored
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeOrderRepository) CountPaymentsByOrderID(ctx context.Context, orderID ulid.ULID) (int64, error) {
	var count int64
	for _, stored := range f.payments {
		if stored.OrderId == orderID {
			count++
		}
	}
	return count, nil
}

// fakeLedgerEngine registra as transações criadas sem aplicar saldos; os
// testes do motor cobrem a álgebra, aqui interessa quando e com o quê a
// sincronização chama o motor.
type fakeLedgerEngine struct {
	transactions map[string]*ledger.Transaction
	created      int
}

func newFakeLedgerEngine() *fakeLedgerEngine {
	return &fakeLedgerEngine{transactions: make(map[string]*ledger.Transaction)}
}

func (f *fakeLedgerEngine) BeginTx(ctx context.Context) (interface{}, error) {
	return struct{}{}, nil
}

func (f *fakeLedgerEngine) CommitTx(tx interface{}) error   { return nil }
func (f *fakeLedgerEngine) RollbackTx(tx interface{}) error { return nil }

func (f *fakeLedgerEngine) CreateTransactionWithTx(ctx context.Context, tx interface{}, transaction *ledger.Transaction) error {
	if pkg.IsEmptyULID(transaction.Id) {
		transaction.Id = pkg.GenerateULIDObject()
	}
	copied := *transaction
	f.transactions[transaction.Id.String()] = &copied
	f.created++
	return nil
}

func (f *fakeLedgerEngine) UpdateStatusWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, status ledger.Status, paymentDate *time.Time) error {
	stored, ok := f.transactions[transactionID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = status
	stored.PaymentDate = paymentDate
	return nil
}

func (f *fakeLedgerEngine) FindByOrderForUpdate(ctx context.Context, tx interface{}, orderID ulid.ULID) (*ledger.Transaction, error) {
	for _, stored := range f.transactions {
		if stored.OrderId != nil && *stored.OrderId == orderID {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerEngine) byOrder(orderID ulid.ULID) *ledger.Transaction {
	for _, stored := range f.transactions {
		if stored.OrderId != nil && *stored.OrderId == orderID {
			return stored
		}
	}
	return nil
}

type fakeAccountResolver struct {
	account *account.Account
}

func (f *fakeAccountResolver) FindOrCreateByCode(ctx context.Context, code, name string, accType account.AccountType) (*account.Account, error) {
	if f.account == nil {
		f.account = &account.Account{
			Id:       pkg.GenerateULIDObject(),
			Code:     code,
			Name:     name,
			Type:     accType,
			IsActive: true,
		}
	}
	return f.account, nil
}

type fakeCategoryResolver struct {
	category *category.Category
}

func (f *fakeCategoryResolver) FindOrCreateByCode(ctx context.Context, code, name string, catType category.Types) (*category.Category, error) {
	if f.category == nil {
		f.category = &category.Category{
			Id:       pkg.GenerateULIDObject(),
			Code:     code,
			Name:     name,
			Type:     catType,
			IsActive: true,
		}
	}
	return f.category, nil
}

func newOrderTestService(orders ...*order.Order) (*order.Service, *fakeOrderRepository, *fakeLedgerEngine) {
	repo := newFakeOrderRepository(orders...)
	engine := newFakeLedgerEngine()
	svc := order.NewService(repo, engine, &fakeAccountResolver{}, &fakeCategoryResolver{})
	return svc, repo, engine
}

func newTestOrder(total, discount float64, paymentStatus order.PaymentStatus) *order.Order {
	now := time.Now()
	return &order.Order{
		Id:            pkg.GenerateULIDObject(),
		TotalValue:    total,
		Discount:      discount,
		Status:        order.StatusPendente,
		PaymentStatus: paymentStatus,
		PaymentMethod: "DINHEIRO",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestCreateOrderValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOrderTestService()

	tests := []struct {
		name string
		req  *order.CreateOrderRequest
	}{
		{"total zero", &order.CreateOrderRequest{TotalValue: 0}},
		{"desconto negativo", &order.CreateOrderRequest{TotalValue: 100, Discount: -1}},
		{"desconto maior que o total", &order.CreateOrderRequest{TotalValue: 100, Discount: 150}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := svc.CreateOrder(context.Background(), tt.req); err == nil {
				t.Fatal("esperado erro de validação")
			}
		})
	}
}

func TestCreateOrderStartsPendente(t *testing.T) {
	t.Parallel()

	svc, _, engine := newOrderTestService()
	created, err := svc.CreateOrder(context.Background(), &order.CreateOrderRequest{TotalValue: 120, Discount: 20})
	if err != nil {
		t.Fatalf("CreateOrder retornou erro: %v", err)
	}

	if created.Status != order.StatusPendente || created.PaymentStatus != order.PaymentPendente {
		t.Errorf("status = (%s, %s), esperado (PENDENTE, PENDENTE)", created.Status, created.PaymentStatus)
	}
	if engine.created != 0 {
		t.Error("criação de pedido não deveria lançar no razão")
	}
}

func TestDeliverCreatesReceitaWithNetValue(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(150, 30, order.PaymentPendente)
	svc, _, engine := newOrderTestService(orderEntity)

	updated, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusEntregue)
	if err != nil {
		t.Fatalf("UpdateOrderStatus retornou erro: %v", err)
	}

	if updated.Status != order.StatusEntregue {
		t.Errorf("status = %s, esperado ENTREGUE", updated.Status)
	}
	if updated.DeliveredAt == nil {
		t.Error("delivered_at deveria ser preenchido na entrega")
	}

	transaction := engine.byOrder(orderEntity.Id)
	if transaction == nil {
		t.Fatal("entrega deveria criar transação vinculada ao pedido")
	}
	if transaction.Type != ledger.Receita {
		t.Errorf("tipo = %s, esperado RECEITA", transaction.Type)
	}
	if transaction.Amount != 120 {
		t.Errorf("valor = %v, esperado 120 (total menos desconto)", transaction.Amount)
	}
	if transaction.Status != ledger.StatusPendente {
		t.Errorf("status = %s, esperado PENDENTE para pedido ainda não cobrado", transaction.Status)
	}
	if transaction.CategoryId == nil {
		t.Error("transação da venda deveria carregar a categoria padrão")
	}
}

func TestDeliverPaidOrderCreatesPagoTransaction(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPago)
	svc, _, engine := newOrderTestService(orderEntity)

	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusEntregue); err != nil {
		t.Fatalf("UpdateOrderStatus retornou erro: %v", err)
	}

	transaction := engine.byOrder(orderEntity.Id)
	if transaction == nil {
		t.Fatal("entrega deveria criar transação vinculada ao pedido")
	}
	if transaction.Status != ledger.StatusPago {
		t.Errorf("status = %s, esperado PAGO para pedido já cobrado", transaction.Status)
	}
}

func TestRedeliverDoesNotDuplicateTransaction(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPendente)
	svc, _, engine := newOrderTestService(orderEntity)

	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusEntregue); err != nil {
		t.Fatalf("primeira entrega retornou erro: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusEmRota); err != nil {
		t.Fatalf("volta para EM_ROTA retornou erro: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusEntregue); err != nil {
		t.Fatalf("segunda entrega retornou erro: %v", err)
	}

	if engine.created != 1 {
		t.Errorf("transações criadas = %d, esperado exatamente 1", engine.created)
	}
}

func TestSameStatusIsNoop(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPendente)
	svc, _, engine := newOrderTestService(orderEntity)

	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusPendente); err != nil {
		t.Fatalf("UpdateOrderStatus retornou erro: %v", err)
	}
	if engine.created != 0 {
		t.Error("mesmo status não deveria tocar o razão")
	}
}

func TestCancelOrderCancelsLinkedTransaction(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPendente)
	svc, _, engine := newOrderTestService(orderEntity)

	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusEntregue); err != nil {
		t.Fatalf("entrega retornou erro: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusCancelado); err != nil {
		t.Fatalf("cancelamento retornou erro: %v", err)
	}

	transaction := engine.byOrder(orderEntity.Id)
	if transaction == nil {
		t.Fatal("transação vinculada deveria continuar existindo")
	}
	if transaction.Status != ledger.StatusCancelado {
		t.Errorf("status = %s, esperado CANCELADO", transaction.Status)
	}
}

func TestCancelOrderWithoutTransactionIsNoop(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPendente)
	svc, repo, engine := newOrderTestService(orderEntity)

	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusCancelado); err != nil {
		t.Fatalf("cancelamento retornou erro: %v", err)
	}

	if engine.created != 0 {
		t.Error("cancelar pedido nunca entregue não deveria criar transação")
	}
	stored, _ := repo.GetByID(context.Background(), orderEntity.Id)
	if stored.Status != order.StatusCancelado {
		t.Errorf("status = %s, esperado CANCELADO", stored.Status)
	}
}

func TestUpdatePaymentStatusMirrorsLedger(t *testing.T) {
	t.Parallel()

	orderEntity := newTestOrder(100, 0, order.PaymentPendente)
	svc, _, engine := newOrderTestService(orderEntity)

	if _, err := svc.UpdateOrderStatus(context.Background(), orderEntity.Id, order.StatusEntregue); err != nil {
		t.Fatalf("entrega retornou erro: %v", err)
	}

	if _, err := svc.UpdateOrderPaymentStatus(context.Background(), orderEntity.Id, order.PaymentPago); err != nil {
		t.Fatalf("UpdateOrderPaymentStatus retornou erro: %v", err)
	}
	transaction := engine.byOrder(orderEntity.Id)
	if transaction.Status != ledger.StatusPago {
		t.Errorf("status = %s, esperado PAGO espelhado", transaction.Status)
	}
	if transaction.PaymentDate == nil {
		t.Error("payment_date deveria ser preenchido ao espelhar PAGO")
	}

	if _, err := svc.UpdateOrderPaymentStatus(context.Background(), orderEntity.Id, order.PaymentPendente); err != nil {
		t.Fatalf("UpdateOrderPaymentStatus retornou erro: %v", err)
	}
	transaction = engine.byOrder(orderEntity.Id)
	if transaction.Status != ledger.StatusPendente {
		t.Errorf("status = %s, esperado PENDENTE espelhado", transaction.Status)
	}
	if transaction.PaymentDate != nil {
		t.Error("payment_date deveria ser limpo ao sair de PAGO")
	}
}
