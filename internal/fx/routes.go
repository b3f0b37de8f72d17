package fx

import (
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/account"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/order"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/purchase"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/middleware"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece handlers e rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newRateLimiter,
	),
)

func newHandler(
	ledgerSvc *ledger.Service,
	accountSvc *account.Service,
	categorySvc *category.Service,
	orderSvc *order.Service,
	purchaseSvc *purchase.Service,
) *routes.Handler {
	return &routes.Handler{
		LedgerService:   ledgerSvc,
		AccountService:  accountSvc,
		CategoryService: categorySvc,
		OrderService:    orderSvc,
		PurchaseService: purchaseSvc,
	}
}

func newRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
