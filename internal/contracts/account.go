package contracts

import (
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/account"
)

type AccountCreateRequest struct {
	Code           string  `json:"code" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	Type           string  `json:"type" binding:"required"`
	InitialBalance float64 `json:"initial_balance"`
	Color          string  `json:"color"`
	Icon           string  `json:"icon"`
}

type AccountUpdateRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon"`
	IsActive *bool   `json:"is_active"`
}

type AccountCreateResponse struct {
	Message string          `json:"message"`
	Account account.Account `json:"account"`
}

type AccountSingleResponse struct {
	Account *account.Account `json:"account"`
}

type AccountListResponse struct {
	Accounts []*account.Account `json:"accounts"`
}

type TotalBalanceResponse struct {
	TotalBalance float64 `json:"total_balance"`
}
