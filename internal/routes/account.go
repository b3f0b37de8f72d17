package routes

import (
	"net/http"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/contracts"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/account"
	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateAccount(c *gin.Context) {
	var body contracts.AccountCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &account.CreateAccountRequest{
		Code:           body.Code,
		Name:           body.Name,
		Type:           account.AccountType(body.Type),
		InitialBalance: body.InitialBalance,
		Color:          body.Color,
		Icon:           body.Icon,
	}

	ctx := c.Request.Context()
	accountEntity, err := h.AccountService.CreateAccount(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.AccountCreateResponse{
		Message: "Conta criada com sucesso",
		Account: *accountEntity,
	})
}

func (h *Handler) ListAccounts(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	ctx := c.Request.Context()
	accounts, err := h.AccountService.ListAccounts(ctx, includeInactive)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountListResponse{Accounts: accounts})
}

func (h *Handler) GetAccount(c *gin.Context) {
	accountID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	accountEntity, err := h.AccountService.GetAccountByID(ctx, accountID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountSingleResponse{Account: accountEntity})
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	accountID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.AccountUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	req := &account.UpdateAccountRequest{
		Name:     body.Name,
		Color:    body.Color,
		Icon:     body.Icon,
		IsActive: body.IsActive,
	}

	ctx := c.Request.Context()
	if err := h.AccountService.UpdateAccount(ctx, accountID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Conta atualizada com sucesso"})
}

func (h *Handler) GetTotalBalance(c *gin.Context) {
	ctx := c.Request.Context()
	total, err := h.AccountService.GetTotalBalance(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TotalBalanceResponse{TotalBalance: total})
}
