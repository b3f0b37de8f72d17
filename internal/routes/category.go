package routes

import (
	"net/http"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/contracts"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCategory(c *gin.Context) {
	var body contracts.CategoryCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &category.CreateCategoryRequest{
		Code:  body.Code,
		Name:  body.Name,
		Type:  category.Types(body.Type),
		Color: body.Color,
		Icon:  body.Icon,
	}

	ctx := c.Request.Context()
	categoryEntity, err := h.CategoryService.CreateCategory(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CategoryCreateResponse{
		Message:  "Categoria criada com sucesso",
		Category: *categoryEntity,
	})
}

func (h *Handler) ListCategories(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	ctx := c.Request.Context()
	categories, err := h.CategoryService.ListCategories(ctx, includeInactive)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryListResponse{Categories: categories})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	req := &category.UpdateCategoryRequest{
		Name:     body.Name,
		Color:    body.Color,
		Icon:     body.Icon,
		IsActive: body.IsActive,
	}

	ctx := c.Request.Context()
	if err := h.CategoryService.UpdateCategory(ctx, categoryID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Categoria atualizada com sucesso"})
}
