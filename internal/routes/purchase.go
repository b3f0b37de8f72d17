package routes

import (
	"net/http"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/contracts"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/purchase"
	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreatePurchase(c *gin.Context) {
	var body contracts.PurchaseCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	productID, err := pkg.ParseULIDPtr(body.ProductID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("product_id", "formato inválido"))
		return
	}
	supplierID, err := pkg.ParseULIDPtr(body.SupplierID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("supplier_id", "formato inválido"))
		return
	}

	req := &purchase.CreatePurchaseRequest{
		ProductId:        productID,
		SupplierId:       supplierID,
		UnitPrice:        body.UnitPrice,
		Quantity:         body.Quantity,
		IsInstallment:    body.IsInstallment,
		InstallmentCount: body.InstallmentCount,
		PurchaseDate:     body.PurchaseDate,
		Notes:            body.Notes,
	}

	ctx := c.Request.Context()
	purchaseEntity, err := h.PurchaseService.CreatePurchase(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.PurchaseCreateResponse{
		Message:  "Compra registrada com sucesso",
		Purchase: *purchaseEntity,
	})
}

func (h *Handler) ListPurchases(c *gin.Context) {
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	purchases, total, err := h.PurchaseService.ListPurchases(ctx, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(purchases, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetPurchase(c *gin.Context) {
	purchaseID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	purchaseEntity, err := h.PurchaseService.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PurchaseSingleResponse{Purchase: purchaseEntity})
}

func (h *Handler) GetPurchaseInstallments(c *gin.Context) {
	purchaseID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	installments, err := h.PurchaseService.GetInstallments(ctx, purchaseID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InstallmentListResponse{Installments: installments})
}

func (h *Handler) UpdateInstallment(c *gin.Context) {
	installmentID, err := pkg.ParseULID(c.Param("installment_id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("installment_id", "formato inválido"))
		return
	}

	var body contracts.InstallmentUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &purchase.UpdateInstallmentRequest{
		PaidAmount: body.PaidAmount,
		PaidDate:   body.PaidDate,
	}

	ctx := c.Request.Context()
	installment, err := h.PurchaseService.UpdateInstallment(ctx, installmentID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InstallmentSingleResponse{Installment: installment})
}
