package fx

import (
	"github.com/maximiza-sistemas/backend-gestao-sub001/config"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/account"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/order"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/purchase"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newAccountRepository,
		newCategoryRepository,
		newTransactionRepository,
		newSummaryRepository,
		newOrderRepository,
		newPurchaseRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newAccountRepository(db *gorm.DB) account.Repository {
	return infrastructure.NewAccountRepository(db)
}

func newCategoryRepository(db *gorm.DB) category.Repository {
	return infrastructure.NewCategoryRepository(db)
}

func newTransactionRepository(db *gorm.DB) ledger.Repository {
	return infrastructure.NewTransactionRepository(db)
}

func newSummaryRepository(db *gorm.DB) ledger.SummaryRepository {
	return infrastructure.NewSummaryRepository(db)
}

func newOrderRepository(db *gorm.DB) order.Repository {
	return infrastructure.NewOrderRepository(db)
}

func newPurchaseRepository(db *gorm.DB) purchase.Repository {
	return infrastructure.NewPurchaseRepository(db)
}
