package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/account"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type fakeLedgerRepository struct {
	transactions map[string]*ledger.Transaction
}

func newFakeLedgerRepository() *fakeLedgerRepository {
	return &fakeLedgerRepository{transactions: make(map[string]*ledger.Transaction)}
}

func (f *fakeLedgerRepository) BeginTx(ctx context.Context) (interface{}, error) {
	return struct{}{}, nil
}

func (f *fakeLedgerRepository) CommitTx(tx interface{}) error   { return nil }
func (f *fakeLedgerRepository) RollbackTx(tx interface{}) error { return nil }

func (f *fakeLedgerRepository) CreateWithTx(ctx context.Context, tx interface{}, t *ledger.Transaction) error {
	copied := *t
	f.transactions[t.Id.String()] = &copied
	return nil
}

func (f *fakeLedgerRepository) UpdateStatusWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, status ledger.Status, paymentDate *time.Time) error {
	stored, ok := f.transactions[transactionID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = status
	stored.PaymentDate = paymentDate
	return nil
}

func (f *fakeLedgerRepository) DeleteWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) error {
	delete(f.transactions, transactionID.String())
	return nil
}

// Update espelha as colunas do update genérico do repositório real: campos
// descritivos entram (mesmo vazios), status e payment_date ficam de fora.
func (f *fakeLedgerRepository) Update(ctx context.Context, t *ledger.Transaction) error {
	stored, ok := f.transactions[t.Id.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Description = t.Description
	stored.Amount = t.Amount
	stored.CategoryId = t.CategoryId
	stored.PaymentMethod = t.PaymentMethod
	stored.TransactionDate = t.TransactionDate
	stored.DueDate = t.DueDate
	stored.Notes = t.Notes
	stored.ClientId = t.ClientId
	stored.SupplierId = t.SupplierId
	stored.UpdatedAt = t.UpdatedAt
	return nil
}

func (f *fakeLedgerRepository) GetByID(ctx context.Context, transactionID ulid.ULID) (*ledger.Transaction, error) {
	stored, ok := f.transactions[transactionID.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeLedgerRepository) GetByIDForUpdate(ctx context.Context, tx interface{}, transactionID ulid.ULID) (*ledger.Transaction, error) {
	return f.GetByID(ctx, transactionID)
}

func (f *fakeLedgerRepository) GetByOrderIDForUpdate(ctx context.Context, tx interface{}, orderID ulid.ULID) (*ledger.Transaction, error) {
	return f.GetByOrderID(ctx, orderID)
}

func (f *fakeLedgerRepository) GetByOrderID(ctx context.Context, orderID ulid.ULID) (*ledger.Transaction, error) {
	for _, stored := range f.transactions {
		if stored.OrderId != nil && *stored.OrderId == orderID {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLedgerRepository) GetAll(ctx context.Context, filters *ledger.Filters, pagination *pkg.PaginationParams) ([]*ledger.Transaction, int64, error) {
	out := make([]*ledger.Transaction, 0, len(f.transactions))
	for _, stored := range f.transactions {
		copied := *stored
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

type fakeAccountRepository struct {
	accounts map[string]*account.Account
}

func newFakeAccountRepository(accounts ...*account.Account) *fakeAccountRepository {
	f := &fakeAccountRepository{accounts: make(map[string]*account.Account)}
	for _, acc := range accounts {
		f.accounts[acc.Id.String()] = acc
	}
	return f
}

func (f *fakeAccountRepository) Create(ctx context.Context, a *account.Account) error {
	f.accounts[a.Id.String()] = a
	return nil
}

func (f *fakeAccountRepository) Update(ctx context.Context, a *account.Account) error {
	f.accounts[a.Id.String()] = a
	return nil
}

func (f *fakeAccountRepository) GetByID(ctx context.Context, accountID ulid.ULID) (*account.Account, error) {
	acc, ok := f.accounts[accountID.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return acc, nil
}

func (f *fakeAccountRepository) GetByCode(ctx context.Context, code string) (*account.Account, error) {
	for _, acc := range f.accounts {
		if acc.Code == code {
			return acc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepository) GetAll(ctx context.Context, onlyActive bool) ([]*account.Account, error) {
	out := make([]*account.Account, 0, len(f.accounts))
	for _, acc := range f.accounts {
		out = append(out, acc)
	}
	return out, nil
}

func (f *fakeAccountRepository) GetTotalBalance(ctx context.Context) (float64, error) {
	var total float64
	for _, acc := range f.accounts {
		total += acc.CurrentBalance
	}
	return total, nil
}

func (f *fakeAccountRepository) ApplyBalanceDeltaWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID, delta float64) error {
	acc, ok := f.accounts[accountID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	acc.CurrentBalance += delta
	return nil
}

type fakeCategoryRepository struct {
	categories map[string]*category.Category
}

func newFakeCategoryRepository(categories ...*category.Category) *fakeCategoryRepository {
	f := &fakeCategoryRepository{categories: make(map[string]*category.Category)}
	for _, cat := range categories {
		f.categories[cat.Id.String()] = cat
	}
	return f
}

func (f *fakeCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	f.categories[c.Id.String()] = c
	return nil
}

func (f *fakeCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	f.categories[c.Id.String()] = c
	return nil
}

func (f *fakeCategoryRepository) GetByID(ctx context.Context, categoryID ulid.ULID) (*category.Category, error) {
	cat, ok := f.categories[categoryID.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cat, nil
}

func (f *fakeCategoryRepository) GetByCode(ctx context.Context, code string) (*category.Category, error) {
	for _, cat := range f.categories {
		if cat.Code == code {
			return cat, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepository) GetAll(ctx context.Context, onlyActive bool) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(f.categories))
	for _, cat := range f.categories {
		out = append(out, cat)
	}
	return out, nil
}

func newTestAccount(balance float64) *account.Account {
	return &account.Account{
		Id:             pkg.GenerateULIDObject(),
		Code:           pkg.GenerateULID(),
		Name:           "Conta Teste",
		Type:           account.TypeBanco,
		CurrentBalance: balance,
		IsActive:       true,
	}
}

func newTestCategory(catType category.Types) *category.Category {
	return &category.Category{
		Id:       pkg.GenerateULIDObject(),
		Code:     pkg.GenerateULID(),
		Name:     "Categoria Teste",
		Type:     catType,
		IsActive: true,
	}
}

func newTestService(accounts []*account.Account, categories []*category.Category) (*ledger.Service, *fakeLedgerRepository, *fakeAccountRepository) {
	ledgerRepo := newFakeLedgerRepository()
	accountRepo := newFakeAccountRepository(accounts...)
	categoryRepo := newFakeCategoryRepository(categories...)
	svc := ledger.NewService(ledgerRepo, accountRepo, categoryRepo, nil)
	return svc, ledgerRepo, accountRepo
}

func TestCreateTransactionPagoAppliesBalanceEffect(t *testing.T) {
	t.Parallel()

	acc := newTestAccount(1000)
	cat := newTestCategory(category.Receita)
	svc, repo, _ := newTestService([]*account.Account{acc}, []*category.Category{cat})

	transaction := &ledger.Transaction{
		Type:        ledger.Receita,
		CategoryId:  &cat.Id,
		AccountId:   acc.Id,
		Description: "Venda de botijão P13",
		Amount:      100,
		Status:      ledger.StatusPago,
	}

	if err := svc.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("CreateTransaction retornou erro: %v", err)
	}

	if acc.CurrentBalance != 1100 {
		t.Errorf("saldo = %v, esperado 1100", acc.CurrentBalance)
	}
	if transaction.Code == "" {
		t.Error("código da transação não foi gerado")
	}
	if transaction.PaymentDate == nil {
		t.Error("payment_date deveria ser preenchido para transação paga")
	}
	if len(repo.transactions) != 1 {
		t.Errorf("transações persistidas = %d, esperado 1", len(repo.transactions))
	}
}

func TestCreateTransactionPendenteDoesNotTouchBalance(t *testing.T) {
	t.Parallel()

	acc := newTestAccount(500)
	cat := newTestCategory(category.Despesa)
	svc, _, _ := newTestService([]*account.Account{acc}, []*category.Category{cat})

	transaction := &ledger.Transaction{
		Type:        ledger.Despesa,
		CategoryId:  &cat.Id,
		AccountId:   acc.Id,
		Description: "Compra de estoque",
		Amount:      200,
	}

	if err := svc.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("CreateTransaction retornou erro: %v", err)
	}

	if acc.CurrentBalance != 500 {
		t.Errorf("saldo = %v, esperado 500 (pendente não move saldo)", acc.CurrentBalance)
	}
	if transaction.Status != ledger.StatusPendente {
		t.Errorf("status = %s, esperado PENDENTE por padrão", transaction.Status)
	}
	if transaction.PaymentDate != nil {
		t.Error("payment_date deveria ser nulo para pendente")
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	t.Parallel()

	acc := newTestAccount(100)
	other := newTestAccount(0)
	cat := newTestCategory(category.Receita)

	tests := []struct {
		name  string
		build func() *ledger.Transaction
	}{
		{"valor zero", func() *ledger.Transaction {
			return &ledger.Transaction{Type: ledger.Receita, CategoryId: &cat.Id, AccountId: acc.Id, Description: "x", Amount: 0}
		}},
		{"valor negativo", func() *ledger.Transaction {
			return &ledger.Transaction{Type: ledger.Receita, CategoryId: &cat.Id, AccountId: acc.Id, Description: "x", Amount: -10}
		}},
		{"tipo inválido", func() *ledger.Transaction {
			return &ledger.Transaction{Type: "PIX", AccountId: acc.Id, Description: "x", Amount: 10}
		}},
		{"receita sem categoria", func() *ledger.Transaction {
			return &ledger.Transaction{Type: ledger.Receita, AccountId: acc.Id, Description: "x", Amount: 10}
		}},
		{"transferência sem destino", func() *ledger.Transaction {
			return &ledger.Transaction{Type: ledger.Transferencia, AccountId: acc.Id, Description: "x", Amount: 10}
		}},
		{"transferência para a mesma conta", func() *ledger.Transaction {
			return &ledger.Transaction{Type: ledger.Transferencia, AccountId: acc.Id, DestinationAccountId: &acc.Id, Description: "x", Amount: 10}
		}},
		{"despesa com conta de destino", func() *ledger.Transaction {
			return &ledger.Transaction{Type: ledger.Despesa, CategoryId: &cat.Id, AccountId: acc.Id, DestinationAccountId: &other.Id, Description: "x", Amount: 10}
		}},
		{"sem descrição", func() *ledger.Transaction {
			return &ledger.Transaction{Type: ledger.Receita, CategoryId: &cat.Id, AccountId: acc.Id, Description: "  ", Amount: 10}
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _ := newTestService([]*account.Account{acc, other}, []*category.Category{cat})
			err := svc.CreateTransaction(context.Background(), tt.build())
			if err == nil {
				t.Fatal("esperado erro de validação")
			}
			appErr, ok := appErrors.AsAppError(err)
			if !ok || appErr.Code != "VALIDATION_ERROR" {
				t.Errorf("erro = %v, esperado VALIDATION_ERROR", err)
			}
			if len(repo.transactions) != 0 {
				t.Error("nenhuma transação deveria ser persistida em falha de validação")
			}
		})
	}
}

func TestCreateTransactionUnknownAccount(t *testing.T) {
	t.Parallel()

	cat := newTestCategory(category.Receita)
	svc, _, _ := newTestService(nil, []*category.Category{cat})

	transaction := &ledger.Transaction{
		Type:        ledger.Receita,
		CategoryId:  &cat.Id,
		AccountId:   pkg.GenerateULIDObject(),
		Description: "x",
		Amount:      10,
	}

	err := svc.CreateTransaction(context.Background(), transaction)
	if !errors.Is(err, appErrors.ErrAccountNotFound) {
		t.Errorf("erro = %v, esperado ErrAccountNotFound", err)
	}
}

func TestTransferStatusRoundtripRestoresBalances(t *testing.T) {
	t.Parallel()

	source := newTestAccount(1000)
	destination := newTestAccount(0)
	svc, _, _ := newTestService([]*account.Account{source, destination}, nil)

	transaction := &ledger.Transaction{
		Type:                 ledger.Transferencia,
		AccountId:            source.Id,
		DestinationAccountId: &destination.Id,
		Description:          "Transferência para caixa",
		Amount:               100,
		Status:               ledger.StatusPago,
	}

	if err := svc.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("CreateTransaction retornou erro: %v", err)
	}
	if source.CurrentBalance != 900 || destination.CurrentBalance != 100 {
		t.Fatalf("saldos = (%v, %v), esperado (900, 100)", source.CurrentBalance, destination.CurrentBalance)
	}

	if err := svc.UpdateTransactionStatus(context.Background(), transaction.Id, ledger.StatusPendente, nil); err != nil {
		t.Fatalf("UpdateTransactionStatus retornou erro: %v", err)
	}
	if source.CurrentBalance != 1000 || destination.CurrentBalance != 0 {
		t.Errorf("saldos = (%v, %v), esperado (1000, 0) após reverter", source.CurrentBalance, destination.CurrentBalance)
	}

	if err := svc.UpdateTransactionStatus(context.Background(), transaction.Id, ledger.StatusPago, nil); err != nil {
		t.Fatalf("UpdateTransactionStatus retornou erro: %v", err)
	}
	if source.CurrentBalance != 900 || destination.CurrentBalance != 100 {
		t.Errorf("saldos = (%v, %v), esperado (900, 100) após reaplicar", source.CurrentBalance, destination.CurrentBalance)
	}
}

func TestUpdateStatusPagoToPagoIsNoop(t *testing.T) {
	t.Parallel()

	acc := newTestAccount(1000)
	cat := newTestCategory(category.Receita)
	svc, _, _ := newTestService([]*account.Account{acc}, []*category.Category{cat})

	transaction := &ledger.Transaction{
		Type:        ledger.Receita,
		CategoryId:  &cat.Id,
		AccountId:   acc.Id,
		Description: "Venda",
		Amount:      50,
		Status:      ledger.StatusPago,
	}
	if err := svc.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("CreateTransaction retornou erro: %v", err)
	}

	if err := svc.UpdateTransactionStatus(context.Background(), transaction.Id, ledger.StatusPago, nil); err != nil {
		t.Fatalf("UpdateTransactionStatus retornou erro: %v", err)
	}

	if acc.CurrentBalance != 1050 {
		t.Errorf("saldo = %v, esperado 1050 (PAGO -> PAGO não duplica efeito)", acc.CurrentBalance)
	}
}

func TestCancelPagoRevertsBalance(t *testing.T) {
	t.Parallel()

	acc := newTestAccount(1000)
	cat := newTestCategory(category.Despesa)
	svc, _, _ := newTestService([]*account.Account{acc}, []*category.Category{cat})

	transaction := &ledger.Transaction{
		Type:        ledger.Despesa,
		CategoryId:  &cat.Id,
		AccountId:   acc.Id,
		Description: "Frete",
		Amount:      300,
		Status:      ledger.StatusPago,
	}
	if err := svc.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("CreateTransaction retornou erro: %v", err)
	}
	if acc.CurrentBalance != 700 {
		t.Fatalf("saldo = %v, esperado 700", acc.CurrentBalance)
	}

	if err := svc.UpdateTransactionStatus(context.Background(), transaction.Id, ledger.StatusCancelado, nil); err != nil {
		t.Fatalf("UpdateTransactionStatus retornou erro: %v", err)
	}
	if acc.CurrentBalance != 1000 {
		t.Errorf("saldo = %v, esperado 1000 após cancelar", acc.CurrentBalance)
	}
}

func TestDeletePagoRejected(t *testing.T) {
	t.Parallel()

	acc := newTestAccount(1000)
	cat := newTestCategory(category.Receita)
	svc, repo, _ := newTestService([]*account.Account{acc}, []*category.Category{cat})

	transaction := &ledger.Transaction{
		Type:        ledger.Receita,
		CategoryId:  &cat.Id,
		AccountId:   acc.Id,
		Description: "Venda",
		Amount:      100,
		Status:      ledger.StatusPago,
	}
	if err := svc.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("CreateTransaction retornou erro: %v", err)
	}

	err := svc.DeleteTransaction(context.Background(), transaction.Id)
	if err == nil {
		t.Fatal("esperado erro ao remover transação paga")
	}
	if len(repo.transactions) != 1 {
		t.Error("transação paga não deveria ter sido removida")
	}

	if err := svc.UpdateTransactionStatus(context.Background(), transaction.Id, ledger.StatusPendente, nil); err != nil {
		t.Fatalf("UpdateTransactionStatus retornou erro: %v", err)
	}
	if err := svc.DeleteTransaction(context.Background(), transaction.Id); err != nil {
		t.Fatalf("DeleteTransaction retornou erro após reverter: %v", err)
	}
	if len(repo.transactions) != 0 {
		t.Error("transação pendente deveria ter sido removida")
	}
	if acc.CurrentBalance != 1000 {
		t.Errorf("saldo = %v, esperado 1000", acc.CurrentBalance)
	}
}

func TestUpdateTransactionAmountFrozenWhenPago(t *testing.T) {
	t.Parallel()

	acc := newTestAccount(1000)
	cat := newTestCategory(category.Receita)
	svc, _, _ := newTestService([]*account.Account{acc}, []*category.Category{cat})

	transaction := &ledger.Transaction{
		Type:        ledger.Receita,
		CategoryId:  &cat.Id,
		AccountId:   acc.Id,
		Description: "Venda",
		Amount:      100,
		Status:      ledger.StatusPago,
	}
	if err := svc.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("CreateTransaction retornou erro: %v", err)
	}

	newAmount := 250.0
	_, err := svc.UpdateTransaction(context.Background(), transaction.Id, &ledger.UpdateTransactionRequest{Amount: &newAmount})
	if err == nil {
		t.Fatal("esperado erro ao alterar valor de transação paga")
	}

	newNotes := "entrega reagendada"
	updated, err := svc.UpdateTransaction(context.Background(), transaction.Id, &ledger.UpdateTransactionRequest{Notes: &newNotes})
	if err != nil {
		t.Fatalf("UpdateTransaction de campos descritivos retornou erro: %v", err)
	}
	if updated.Notes != newNotes {
		t.Errorf("notes = %q, esperado %q", updated.Notes, newNotes)
	}
	if acc.CurrentBalance != 1100 {
		t.Errorf("saldo = %v, esperado 1100 inalterado", acc.CurrentBalance)
	}
}

func TestUpdateTransactionClearsOptionalFields(t *testing.T) {
	t.Parallel()

	acc := newTestAccount(1000)
	cat := newTestCategory(category.Receita)
	svc, repo, _ := newTestService([]*account.Account{acc}, []*category.Category{cat})

	transaction := &ledger.Transaction{
		Type:          ledger.Receita,
		CategoryId:    &cat.Id,
		AccountId:     acc.Id,
		Description:   "Venda",
		Amount:        100,
		PaymentMethod: "PIX",
		Notes:         "cliente retira na loja",
	}
	if err := svc.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("CreateTransaction retornou erro: %v", err)
	}

	empty := ""
	updated, err := svc.UpdateTransaction(context.Background(), transaction.Id, &ledger.UpdateTransactionRequest{
		Notes:         &empty,
		PaymentMethod: &empty,
	})
	if err != nil {
		t.Fatalf("UpdateTransaction retornou erro: %v", err)
	}
	if updated.Notes != "" || updated.PaymentMethod != "" {
		t.Errorf("retorno = (notes %q, método %q), esperado ambos vazios", updated.Notes, updated.PaymentMethod)
	}

	stored := repo.transactions[transaction.Id.String()]
	if stored.Notes != "" || stored.PaymentMethod != "" {
		t.Errorf("persistido = (notes %q, método %q), limpar campo opcional deveria gravar vazio", stored.Notes, stored.PaymentMethod)
	}
	if stored.Status != ledger.StatusPendente {
		t.Errorf("status = %s, update genérico não deveria tocar o status", stored.Status)
	}
}

func TestUpdateStatusExplicitVencidoRevertsBalance(t *testing.T) {
	t.Parallel()

	acc := newTestAccount(1000)
	cat := newTestCategory(category.Receita)
	svc, repo, _ := newTestService([]*account.Account{acc}, []*category.Category{cat})

	transaction := &ledger.Transaction{
		Type:        ledger.Receita,
		CategoryId:  &cat.Id,
		AccountId:   acc.Id,
		Description: "Venda a prazo",
		Amount:      200,
		Status:      ledger.StatusPago,
	}
	if err := svc.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("CreateTransaction retornou erro: %v", err)
	}
	if acc.CurrentBalance != 1200 {
		t.Fatalf("saldo = %v, esperado 1200", acc.CurrentBalance)
	}

	if err := svc.UpdateTransactionStatus(context.Background(), transaction.Id, ledger.StatusVencido, nil); err != nil {
		t.Fatalf("UpdateTransactionStatus retornou erro: %v", err)
	}
	if acc.CurrentBalance != 1000 {
		t.Errorf("saldo = %v, esperado 1000 (sair de PAGO reverte)", acc.CurrentBalance)
	}

	stored := repo.transactions[transaction.Id.String()]
	if stored.Status != ledger.StatusVencido {
		t.Errorf("status = %s, esperado VENCIDO gravado", stored.Status)
	}
	if stored.PaymentDate != nil {
		t.Error("payment_date deveria ser limpo ao sair de PAGO")
	}

	if err := svc.UpdateTransactionStatus(context.Background(), transaction.Id, ledger.StatusPago, nil); err != nil {
		t.Fatalf("UpdateTransactionStatus retornou erro: %v", err)
	}
	if acc.CurrentBalance != 1200 {
		t.Errorf("saldo = %v, esperado 1200 após quitar a vencida", acc.CurrentBalance)
	}
}

func TestGetTransactionByIDDerivesVencido(t *testing.T) {
	t.Parallel()

	acc := newTestAccount(1000)
	cat := newTestCategory(category.Despesa)
	svc, repo, _ := newTestService([]*account.Account{acc}, []*category.Category{cat})

	due := time.Now().Add(-48 * time.Hour)
	transaction := &ledger.Transaction{
		Type:        ledger.Despesa,
		CategoryId:  &cat.Id,
		AccountId:   acc.Id,
		Description: "Boleto do fornecedor",
		Amount:      80,
		DueDate:     &due,
	}
	if err := svc.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("CreateTransaction retornou erro: %v", err)
	}

	got, err := svc.GetTransactionByID(context.Background(), transaction.Id)
	if err != nil {
		t.Fatalf("GetTransactionByID retornou erro: %v", err)
	}
	if got.Status != ledger.StatusVencido {
		t.Errorf("status = %s, esperado VENCIDO derivado na leitura unitária", got.Status)
	}

	stored := repo.transactions[transaction.Id.String()]
	if stored.Status != ledger.StatusPendente {
		t.Errorf("status persistido = %s, derivação não deveria reescrever a linha", stored.Status)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(nil, nil)
	err := svc.UpdateTransactionStatus(context.Background(), pkg.GenerateULIDObject(), ledger.StatusPago, nil)
	if !errors.Is(err, appErrors.ErrTransactionNotFound) {
		t.Errorf("erro = %v, esperado ErrTransactionNotFound", err)
	}
}
