package routes

import (
	"net/http"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/contracts"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, appErrors.NewValidationError(name, "formato inválido, use AAAA-MM-DD")
	}
	return &parsed, nil
}

func parseULIDQuery(c *gin.Context, name string) (*ulid.ULID, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	parsed, err := pkg.ParseULID(value)
	if err != nil {
		return nil, appErrors.NewValidationError(name, "formato inválido")
	}
	return &parsed, nil
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var body contracts.TransactionCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	accountID, err := pkg.ParseULID(body.AccountID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("account_id", "formato inválido"))
		return
	}

	categoryID, err := pkg.ParseULIDPtr(body.CategoryID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}

	destinationID, err := pkg.ParseULIDPtr(body.DestinationAccountID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("destination_account_id", "formato inválido"))
		return
	}

	clientID, err := pkg.ParseULIDPtr(body.ClientID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("client_id", "formato inválido"))
		return
	}

	supplierID, err := pkg.ParseULIDPtr(body.SupplierID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("supplier_id", "formato inválido"))
		return
	}

	transactionEntity := ledger.Transaction{
		Type:                 ledger.Types(body.Type),
		CategoryId:           categoryID,
		AccountId:            accountID,
		DestinationAccountId: destinationID,
		ClientId:             clientID,
		SupplierId:           supplierID,
		Description:          body.Description,
		Amount:               body.Amount,
		PaymentMethod:        body.PaymentMethod,
		DueDate:              body.DueDate,
		Status:               ledger.Status(body.Status),
		Notes:                body.Notes,
	}
	if body.TransactionDate != nil {
		transactionEntity.TransactionDate = *body.TransactionDate
	}

	ctx := c.Request.Context()
	if err := h.LedgerService.CreateTransaction(ctx, &transactionEntity); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionCreateResponse{
		Message:     "Transação criada com sucesso",
		Transaction: transactionEntity,
	})
}

func (h *Handler) GetTransactions(c *gin.Context) {
	filters := &ledger.Filters{
		Type:   ledger.Types(c.Query("type")),
		Status: ledger.Status(c.Query("status")),
	}

	var err error
	if filters.StartDate, err = parseDateQuery(c, "start_date"); err != nil {
		h.respondError(c, err)
		return
	}
	if filters.EndDate, err = parseDateQuery(c, "end_date"); err != nil {
		h.respondError(c, err)
		return
	}
	if filters.AccountId, err = parseULIDQuery(c, "account_id"); err != nil {
		h.respondError(c, err)
		return
	}
	if filters.CategoryId, err = parseULIDQuery(c, "category_id"); err != nil {
		h.respondError(c, err)
		return
	}
	if filters.OrderId, err = parseULIDQuery(c, "order_id"); err != nil {
		h.respondError(c, err)
		return
	}
	if filters.ClientId, err = parseULIDQuery(c, "client_id"); err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	transactions, total, err := h.LedgerService.GetAllTransactions(ctx, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(transactions, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	transactionEntity, err := h.LedgerService.GetTransactionByID(ctx, transactionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionSingleResponse{Transaction: transactionEntity})
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.TransactionUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	if body.Status != nil {
		h.respondError(c, appErrors.NewValidationError("status", "use o endpoint de status para transições"))
		return
	}

	categoryID, err := pkg.ParseULIDPtr(body.CategoryID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}
	clientID, err := pkg.ParseULIDPtr(body.ClientID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("client_id", "formato inválido"))
		return
	}
	supplierID, err := pkg.ParseULIDPtr(body.SupplierID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("supplier_id", "formato inválido"))
		return
	}

	req := &ledger.UpdateTransactionRequest{
		Description:     body.Description,
		Amount:          body.Amount,
		CategoryId:      categoryID,
		PaymentMethod:   body.PaymentMethod,
		TransactionDate: body.TransactionDate,
		DueDate:         body.DueDate,
		Notes:           body.Notes,
		ClientId:        clientID,
		SupplierId:      supplierID,
	}

	ctx := c.Request.Context()
	transactionEntity, err := h.LedgerService.UpdateTransaction(ctx, transactionID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionSingleResponse{Transaction: transactionEntity})
}

func (h *Handler) UpdateTransactionStatus(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.TransactionStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.LedgerService.UpdateTransactionStatus(ctx, transactionID, ledger.Status(body.Status), body.PaymentDate); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Status atualizado com sucesso"})
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.LedgerService.DeleteTransaction(ctx, transactionID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transação removida com sucesso"})
}

func (h *Handler) GetFinancialSummary(c *gin.Context) {
	filters := &ledger.SummaryFilters{}

	var err error
	if filters.StartDate, err = parseDateQuery(c, "start_date"); err != nil {
		h.respondError(c, err)
		return
	}
	if filters.EndDate, err = parseDateQuery(c, "end_date"); err != nil {
		h.respondError(c, err)
		return
	}
	if filters.AccountId, err = parseULIDQuery(c, "account_id"); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	summary, err := h.LedgerService.GetFinancialSummary(ctx, filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetCashFlow(c *gin.Context) {
	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		h.respondError(c, err)
		return
	}
	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		h.respondError(c, err)
		return
	}

	now := time.Now()
	if startDate == nil {
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		startDate = &firstOfMonth
	}
	if endDate == nil {
		endDate = &now
	}

	ctx := c.Request.Context()
	entries, err := h.LedgerService.GetCashFlow(ctx, *startDate, *endDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cash_flow": entries})
}

func (h *Handler) GetCategoryBreakdown(c *gin.Context) {
	categoryType := category.Types(c.DefaultQuery("type", string(category.Despesa)))

	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		h.respondError(c, err)
		return
	}
	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		h.respondError(c, err)
		return
	}

	now := time.Now()
	if startDate == nil {
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		startDate = &firstOfMonth
	}
	if endDate == nil {
		endDate = &now
	}

	ctx := c.Request.Context()
	entries, err := h.LedgerService.GetCategoryBreakdown(ctx, categoryType, *startDate, *endDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": entries})
}
