package contracts

import (
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
)

type TransactionCreateRequest struct {
	Type                 string     `json:"type" binding:"required"`
	CategoryID           *string    `json:"category_id"`
	AccountID            string     `json:"account_id" binding:"required"`
	DestinationAccountID *string    `json:"destination_account_id"`
	ClientID             *string    `json:"client_id"`
	SupplierID           *string    `json:"supplier_id"`
	Description          string     `json:"description" binding:"required"`
	Amount               float64    `json:"amount" binding:"required,gt=0"`
	PaymentMethod        string     `json:"payment_method"`
	TransactionDate      *time.Time `json:"transaction_date"`
	DueDate              *time.Time `json:"due_date"`
	Status               string     `json:"status"`
	Notes                string     `json:"notes"`
}

// Status fica aqui apenas para ser rejeitado com uma mensagem clara: toda
// transição de status passa pelo endpoint dedicado.
type TransactionUpdateRequest struct {
	Status          *string    `json:"status"`
	Description     *string    `json:"description"`
	Amount          *float64   `json:"amount"`
	CategoryID      *string    `json:"category_id"`
	PaymentMethod   *string    `json:"payment_method"`
	TransactionDate *time.Time `json:"transaction_date"`
	DueDate         *time.Time `json:"due_date"`
	Notes           *string    `json:"notes"`
	ClientID        *string    `json:"client_id"`
	SupplierID      *string    `json:"supplier_id"`
}

type TransactionStatusRequest struct {
	Status      string     `json:"status" binding:"required"`
	PaymentDate *time.Time `json:"payment_date"`
}

type TransactionCreateResponse struct {
	Message     string             `json:"message"`
	Transaction ledger.Transaction `json:"transaction"`
}

type TransactionSingleResponse struct {
	Transaction *ledger.Transaction `json:"transaction"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
