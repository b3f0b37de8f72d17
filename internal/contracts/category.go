package contracts

import (
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
)

type CategoryCreateRequest struct {
	Code  string `json:"code" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type CategoryUpdateRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon"`
	IsActive *bool   `json:"is_active"`
}

type CategoryCreateResponse struct {
	Message  string            `json:"message"`
	Category category.Category `json:"category"`
}

type CategoryListResponse struct {
	Categories []*category.Category `json:"categories"`
}
