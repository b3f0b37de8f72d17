package ledger

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Transaction é o lançamento financeiro. Receitas e despesas movimentam uma
// conta; transferências e depósitos movimentam duas. Os campos de vínculo
// (OrderId, ClientId, SupplierId, ParentTransactionId) são opcionais e ligam
// o lançamento à origem de negócio que o gerou.
type Transaction struct {
	Id                   ulid.ULID  `json:"id"`
	Code                 string     `json:"code"`
	Type                 Types      `json:"type"`
	CategoryId           *ulid.ULID `json:"categoryId,omitempty"`
	AccountId            ulid.ULID  `json:"accountId"`
	DestinationAccountId *ulid.ULID `json:"destinationAccountId,omitempty"`
	OrderId              *ulid.ULID `json:"orderId,omitempty"`
	ClientId             *ulid.ULID `json:"clientId,omitempty"`
	SupplierId           *ulid.ULID `json:"supplierId,omitempty"`
	Description          string     `json:"description"`
	Amount               float64    `json:"amount"`
	PaymentMethod        string     `json:"paymentMethod,omitempty"`
	TransactionDate      time.Time  `json:"transactionDate"`
	DueDate              *time.Time `json:"dueDate,omitempty"`
	PaymentDate          *time.Time `json:"paymentDate,omitempty"`
	Status               Status     `json:"status"`
	InstallmentNumber    *int       `json:"installmentNumber,omitempty"`
	TotalInstallments    *int       `json:"totalInstallments,omitempty"`
	ParentTransactionId  *ulid.ULID `json:"parentTransactionId,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`

	// Campos hidratados por junção nas listagens; não persistidos.
	CategoryName           string `json:"categoryName,omitempty"`
	AccountName            string `json:"accountName,omitempty"`
	DestinationAccountName string `json:"destinationAccountName,omitempty"`
}

// EffectiveStatus deriva VENCIDO em tempo de leitura: uma pendente com
// vencimento no passado é exibida como vencida sem reescrever a linha.
func (t *Transaction) EffectiveStatus(now time.Time) Status {
	if t.Status == StatusPendente && t.DueDate != nil && t.DueDate.Before(now) {
		return StatusVencido
	}
	return t.Status
}
