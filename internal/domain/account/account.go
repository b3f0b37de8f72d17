package account

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Account é uma conta financeira da distribuidora (caixa, banco, carteira
// digital). O saldo corrente é mutado exclusivamente pelo motor de lançamentos,
// via delta aplicado na mesma transação de banco do lançamento que o justifica.
type Account struct {
	Id             ulid.ULID   `json:"id"`
	Code           string      `json:"code"`
	Name           string      `json:"name"`
	Type           AccountType `json:"type"`
	InitialBalance float64     `json:"initialBalance"`
	CurrentBalance float64     `json:"currentBalance"`
	Color          string      `json:"color"`
	Icon           string      `json:"icon"`
	IsActive       bool        `json:"isActive"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
