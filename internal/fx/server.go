package fx

import (
	"context"

	"github.com/maximiza-sistemas/backend-gestao-sub001/config"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/logger"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/middleware"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/routes"

	docs "github.com/maximiza-sistemas/backend-gestao-sub001/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	rateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(middleware.RateLimit(rateLimiter))
	{
		accounts := api.Group("/accounts")
		{
			accounts.POST("", handler.CreateAccount)
			accounts.GET("", handler.ListAccounts)
			accounts.GET("/balance", handler.GetTotalBalance)
			accounts.GET("/:id", handler.GetAccount)
			accounts.PATCH("/:id", handler.UpdateAccount)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", handler.CreateCategory)
			categories.GET("", handler.ListCategories)
			categories.PATCH("/:id", handler.UpdateCategory)
		}

		transactions := api.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.GET("", handler.GetTransactions)
			transactions.GET("/summary", handler.GetFinancialSummary)
			transactions.GET("/cash-flow", handler.GetCashFlow)
			transactions.GET("/category-breakdown", handler.GetCategoryBreakdown)
			transactions.GET("/:id", handler.GetTransaction)
			transactions.PATCH("/:id", handler.UpdateTransaction)
			transactions.PATCH("/:id/status", handler.UpdateTransactionStatus)
			transactions.DELETE("/:id", handler.DeleteTransaction)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", handler.CreateOrder)
			orders.GET("", handler.ListOrders)
			orders.GET("/:id", handler.GetOrder)
			orders.PATCH("/:id/status", handler.UpdateOrderStatus)
			orders.PATCH("/:id/payment-status", handler.UpdateOrderPaymentStatus)
			orders.POST("/:id/payments", handler.RecordOrderPayment)
			orders.GET("/:id/payments", handler.ListOrderPayments)
			orders.GET("/:id/payments/summary", handler.GetOrderPaymentSummary)
			orders.DELETE("/payments/:payment_id", handler.DeleteOrderPayment)
		}

		purchases := api.Group("/purchases")
		{
			purchases.POST("", handler.CreatePurchase)
			purchases.GET("", handler.ListPurchases)
			purchases.GET("/:id", handler.GetPurchase)
			purchases.GET("/:id/installments", handler.GetPurchaseInstallments)
			purchases.PATCH("/installments/:installment_id", handler.UpdateInstallment)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
