package routes

import (
	"net/http"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/contracts"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/order"
	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateOrder(c *gin.Context) {
	var body contracts.OrderCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	clientID, err := pkg.ParseULIDPtr(body.ClientID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("client_id", "formato inválido"))
		return
	}

	req := &order.CreateOrderRequest{
		ClientId:      clientID,
		TotalValue:    body.TotalValue,
		Discount:      body.Discount,
		PaymentMethod: body.PaymentMethod,
		Notes:         body.Notes,
	}

	ctx := c.Request.Context()
	orderEntity, err := h.OrderService.CreateOrder(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.OrderCreateResponse{
		Message: "Pedido criado com sucesso",
		Order:   *orderEntity,
	})
}

func (h *Handler) ListOrders(c *gin.Context) {
	filters := &order.Filters{
		Status:        order.OrderStatus(c.Query("status")),
		PaymentStatus: order.PaymentStatus(c.Query("payment_status")),
	}

	var err error
	if filters.ClientId, err = parseULIDQuery(c, "client_id"); err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	orders, total, err := h.OrderService.ListOrders(ctx, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(orders, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	orderEntity, err := h.OrderService.GetOrderByID(ctx, orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.OrderSingleResponse{Order: orderEntity})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.OrderStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	orderEntity, err := h.OrderService.UpdateOrderStatus(ctx, orderID, order.OrderStatus(body.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.OrderSingleResponse{Order: orderEntity})
}

func (h *Handler) UpdateOrderPaymentStatus(c *gin.Context) {
	orderID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.OrderPaymentStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	orderEntity, err := h.OrderService.UpdateOrderPaymentStatus(ctx, orderID, order.PaymentStatus(body.PaymentStatus))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.OrderSingleResponse{Order: orderEntity})
}

func (h *Handler) RecordOrderPayment(c *gin.Context) {
	orderID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.OrderPaymentCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := pkg.ParseULIDPtr(body.UserID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("user_id", "formato inválido"))
		return
	}

	req := &order.RecordPaymentRequest{
		Amount:        body.Amount,
		PaymentMethod: body.PaymentMethod,
		Notes:         body.Notes,
		UserId:        userID,
		PaymentDate:   body.PaymentDate,
	}

	ctx := c.Request.Context()
	payment, err := h.OrderService.RecordPayment(ctx, orderID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.OrderPaymentCreateResponse{
		Message: "Pagamento registrado com sucesso",
		Payment: *payment,
	})
}

func (h *Handler) DeleteOrderPayment(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("payment_id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("payment_id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.OrderService.DeletePayment(ctx, paymentID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Pagamento removido com sucesso"})
}

func (h *Handler) ListOrderPayments(c *gin.Context) {
	orderID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	payments, err := h.OrderService.GetPaymentsByOrder(ctx, orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.OrderPaymentListResponse{Payments: payments})
}

func (h *Handler) GetOrderPaymentSummary(c *gin.Context) {
	orderID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	summary, err := h.OrderService.GetPaymentSummary(ctx, orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PaymentSummaryResponse{Summary: summary})
}
