package purchase

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type InstallmentStatus string

const (
	StatusPendente InstallmentStatus = "PENDENTE"
	StatusPago     InstallmentStatus = "PAGO"
	StatusVencido  InstallmentStatus = "VENCIDO"
)

// Purchase é uma compra de estoque junto a fornecedor. TotalAmount é sempre
// unit_price x quantity; quando parcelada, as parcelas somam exatamente esse
// total (o resto do arredondamento vai para a última).
type Purchase struct {
	Id               ulid.ULID  `json:"id"`
	ProductId        *ulid.ULID `json:"productId,omitempty"`
	SupplierId       *ulid.ULID `json:"supplierId,omitempty"`
	UnitPrice        float64    `json:"unitPrice"`
	Quantity         int        `json:"quantity"`
	TotalAmount      float64    `json:"totalAmount"`
	IsInstallment    bool       `json:"isInstallment"`
	InstallmentCount int        `json:"installmentCount"`
	PurchaseDate     time.Time  `json:"purchaseDate"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type Installment struct {
	Id         ulid.ULID         `json:"id"`
	PurchaseId ulid.ULID         `json:"purchaseId"`
	Number     int               `json:"number"`
	Amount     float64           `json:"amount"`
	DueDate    time.Time         `json:"dueDate"`
	PaidAmount float64           `json:"paidAmount"`
	PaidDate   *time.Time        `json:"paidDate,omitempty"`
	Status     InstallmentStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// EffectiveStatus deriva VENCIDO em tempo de leitura para parcelas não pagas
// com vencimento no passado. O status armazenado nunca guarda VENCIDO.
func (i *Installment) EffectiveStatus(now time.Time) InstallmentStatus {
	if i.Status != StatusPago && i.DueDate.Before(now) {
		return StatusVencido
	}
	return i.Status
}
