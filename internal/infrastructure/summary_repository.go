package infrastructure

import (
	"context"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"gorm.io/gorm"
)

type SummaryRepository struct {
	DB *gorm.DB
}

var _ ledger.SummaryRepository = (*SummaryRepository)(nil)

func NewSummaryRepository(db *gorm.DB) ledger.SummaryRepository {
	return &SummaryRepository{DB: db}
}

func (r *SummaryRepository) applyFilters(query *gorm.DB, filters *ledger.SummaryFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.StartDate != nil {
		query = query.Where("transaction_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("transaction_date <= ?", *filters.EndDate)
	}
	if filters.AccountId != nil {
		accountID := filters.AccountId.String()
		query = query.Where("account_id = ? OR destination_account_id = ?", accountID, accountID)
	}
	return query
}

func (r *SummaryRepository) GetFinancialSummary(ctx context.Context, filters *ledger.SummaryFilters) (*ledger.FinancialSummary, error) {
	summary := &ledger.FinancialSummary{
		CountByStatus: make(map[ledger.Status]int64),
	}

	err := r.applyFilters(r.DB.WithContext(ctx).Table("transactions"), filters).
		Where("type = ? AND status = ?", string(ledger.Receita), string(ledger.StatusPago)).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.TotalReceitas).Error
	if err != nil {
		return nil, err
	}

	err = r.applyFilters(r.DB.WithContext(ctx).Table("transactions"), filters).
		Where("type = ? AND status = ?", string(ledger.Despesa), string(ledger.StatusPago)).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.TotalDespesas).Error
	if err != nil {
		return nil, err
	}

	// Pendente e vencido particionam as linhas em aberto: vencido soma o
	// status VENCIDO gravado e as pendentes com vencimento no passado;
	// pendente fica com o restante das PENDENTE.
	now := time.Now()
	err = r.applyFilters(r.DB.WithContext(ctx).Table("transactions"), filters).
		Where("type = ? AND status = ? AND (due_date IS NULL OR due_date >= ?)",
			string(ledger.Receita), string(ledger.StatusPendente), now).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.PendingReceitas).Error
	if err != nil {
		return nil, err
	}

	err = r.applyFilters(r.DB.WithContext(ctx).Table("transactions"), filters).
		Where("type = ? AND status = ? AND (due_date IS NULL OR due_date >= ?)",
			string(ledger.Despesa), string(ledger.StatusPendente), now).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.PendingDespesas).Error
	if err != nil {
		return nil, err
	}

	err = r.applyFilters(r.DB.WithContext(ctx).Table("transactions"), filters).
		Where("type = ? AND (status = ? OR (status = ? AND due_date < ?))",
			string(ledger.Receita), string(ledger.StatusVencido), string(ledger.StatusPendente), now).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.OverdueReceitas).Error
	if err != nil {
		return nil, err
	}

	err = r.applyFilters(r.DB.WithContext(ctx).Table("transactions"), filters).
		Where("type = ? AND (status = ? OR (status = ? AND due_date < ?))",
			string(ledger.Despesa), string(ledger.StatusVencido), string(ledger.StatusPendente), now).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.OverdueDespesas).Error
	if err != nil {
		return nil, err
	}

	summary.Balance = summary.TotalReceitas - summary.TotalDespesas

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	err = r.applyFilters(r.DB.WithContext(ctx).Table("transactions"), filters).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, sc := range counts {
		summary.CountByStatus[ledger.Status(sc.Status)] = sc.Count
	}

	return summary, nil
}

// GetCashFlow agrupa receitas e despesas pagas por dia. Dias sem movimento
// entram zerados para a série ficar contínua no período.
func (r *SummaryRepository) GetCashFlow(ctx context.Context, startDate, endDate time.Time) ([]*ledger.CashFlowEntry, error) {
	type result struct {
		Date   time.Time
		Type   string
		Amount float64
	}

	var results []result
	err := r.DB.WithContext(ctx).Table("transactions").
		Select("DATE(transaction_date) as date, type, COALESCE(SUM(amount), 0) as amount").
		Where("status = ? AND transaction_date BETWEEN ? AND ?", string(ledger.StatusPago), startDate, endDate).
		Where("type IN ?", []string{string(ledger.Receita), string(ledger.Despesa)}).
		Group("DATE(transaction_date), type").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	dailyMap := make(map[string]*ledger.CashFlowEntry)
	start := startDate.Truncate(24 * time.Hour)
	end := endDate.Truncate(24 * time.Hour)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		dailyMap[dateStr] = &ledger.CashFlowEntry{Date: dateStr}
	}

	for _, res := range results {
		dateStr := res.Date.Format("2006-01-02")
		entry, ok := dailyMap[dateStr]
		if !ok {
			continue
		}
		switch res.Type {
		case string(ledger.Receita):
			entry.Receitas = res.Amount
		case string(ledger.Despesa):
			entry.Despesas = res.Amount
		}
	}

	entries := make([]*ledger.CashFlowEntry, 0, len(dailyMap))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		entry := dailyMap[dateStr]
		entry.Net = entry.Receitas - entry.Despesas
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *SummaryRepository) GetCategoryBreakdown(ctx context.Context, categoryType string, startDate, endDate time.Time) ([]*ledger.CategoryBreakdownEntry, error) {
	transactionType := string(ledger.Receita)
	if categoryType == string(ledger.Despesa) {
		transactionType = string(ledger.Despesa)
	}

	type result struct {
		CategoryId   string
		CategoryName string
		Amount       float64
		Count        int64
	}

	// Parte das categorias, não das transações: categorias sem movimento no
	// período entram zeradas no resultado.
	var results []result
	err := r.DB.WithContext(ctx).Table("categories c").
		Select("c.id as category_id, c.name as category_name, COALESCE(SUM(t.amount), 0) as amount, COUNT(t.id) as count").
		Joins("LEFT JOIN transactions t ON t.category_id = c.id AND t.type = ? AND t.status = ? AND t.transaction_date BETWEEN ? AND ?",
			transactionType, string(ledger.StatusPago), startDate, endDate).
		Where("c.type = ? AND c.is_active = ?", categoryType, true).
		Group("c.id, c.name").
		Order("amount DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	var total float64
	for _, res := range results {
		total += res.Amount
	}

	entries := make([]*ledger.CategoryBreakdownEntry, 0, len(results))
	for _, res := range results {
		categoryID, err := pkg.ParseULID(res.CategoryId)
		if err != nil {
			continue
		}
		percentage := 0.0
		if total > 0 {
			percentage = (res.Amount / total) * 100
		}
		entries = append(entries, &ledger.CategoryBreakdownEntry{
			CategoryId:   categoryID,
			CategoryName: res.CategoryName,
			Total:        res.Amount,
			Percentage:   percentage,
			Count:        res.Count,
		})
	}

	return entries, nil
}
