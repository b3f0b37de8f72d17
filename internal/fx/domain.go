package fx

import (
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/account"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/order"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/purchase"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newAccountService,
		newCategoryService,
		newLedgerService,
		newOrderService,
		newPurchaseService,
	),
)

func newAccountService(repo account.Repository) *account.Service {
	return account.NewService(repo)
}

func newCategoryService(repo category.Repository) *category.Service {
	return category.NewService(repo)
}

func newLedgerService(
	repo ledger.Repository,
	accountRepo account.Repository,
	categoryRepo category.Repository,
	summaryRepo ledger.SummaryRepository,
) *ledger.Service {
	return ledger.NewService(repo, accountRepo, categoryRepo, summaryRepo)
}

func newOrderService(
	repo order.Repository,
	ledgerSvc *ledger.Service,
	accountSvc *account.Service,
	categorySvc *category.Service,
) *order.Service {
	return order.NewService(repo, ledgerSvc, accountSvc, categorySvc)
}

func newPurchaseService(repo purchase.Repository) *purchase.Service {
	return purchase.NewService(repo)
}
