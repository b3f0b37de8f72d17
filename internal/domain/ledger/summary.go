package ledger

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type SummaryFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	AccountId *ulid.ULID
}

// FinancialSummary agrega o período: realizados (PAGO), pendentes e vencidos
// por tipo. Vencido soma tanto o status VENCIDO gravado quanto as pendentes
// com vencimento no passado; pendente fica com o restante, sem contar linha
// duas vezes. TotalBalance é o saldo corrente somado das contas ativas,
// independente do período filtrado.
type FinancialSummary struct {
	TotalReceitas   float64          `json:"totalReceitas"`
	TotalDespesas   float64          `json:"totalDespesas"`
	Balance         float64          `json:"balance"`
	TotalBalance    float64          `json:"totalBalance"`
	PendingReceitas float64          `json:"pendingReceitas"`
	PendingDespesas float64          `json:"pendingDespesas"`
	OverdueReceitas float64          `json:"overdueReceitas"`
	OverdueDespesas float64          `json:"overdueDespesas"`
	CountByStatus   map[Status]int64 `json:"countByStatus"`
}

type CashFlowEntry struct {
	Date     string  `json:"date"`
	Receitas float64 `json:"receitas"`
	Despesas float64 `json:"despesas"`
	Net      float64 `json:"net"`
}

type CategoryBreakdownEntry struct {
	CategoryId   ulid.ULID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Total        float64   `json:"total"`
	Percentage   float64   `json:"percentage"`
	Count        int64     `json:"count"`
}

// SummaryRepository isola as agregações de leitura do caminho transacional.
type SummaryRepository interface {
	GetFinancialSummary(ctx context.Context, filters *SummaryFilters) (*FinancialSummary, error)
	GetCashFlow(ctx context.Context, startDate, endDate time.Time) ([]*CashFlowEntry, error)
	GetCategoryBreakdown(ctx context.Context, categoryType string, startDate, endDate time.Time) ([]*CategoryBreakdownEntry, error)
}
