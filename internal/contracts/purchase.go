package contracts

import (
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/purchase"
)

type PurchaseCreateRequest struct {
	ProductID        *string    `json:"product_id"`
	SupplierID       *string    `json:"supplier_id"`
	UnitPrice        float64    `json:"unit_price" binding:"required,gt=0"`
	Quantity         int        `json:"quantity" binding:"required,gt=0"`
	IsInstallment    bool       `json:"is_installment"`
	InstallmentCount int        `json:"installment_count"`
	PurchaseDate     *time.Time `json:"purchase_date"`
	Notes            string     `json:"notes"`
}

type InstallmentUpdateRequest struct {
	PaidAmount float64    `json:"paid_amount" binding:"gte=0"`
	PaidDate   *time.Time `json:"paid_date"`
}

type PurchaseCreateResponse struct {
	Message  string            `json:"message"`
	Purchase purchase.Purchase `json:"purchase"`
}

type PurchaseSingleResponse struct {
	Purchase *purchase.Purchase `json:"purchase"`
}

type InstallmentListResponse struct {
	Installments []*purchase.Installment `json:"installments"`
}

type InstallmentSingleResponse struct {
	Installment *purchase.Installment `json:"installment"`
}
