package category

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Types string

const (
	Receita Types = "RECEITA"
	Despesa Types = "DESPESA"
)

func (t Types) IsValid() bool {
	switch t {
	case Receita, Despesa:
		return true
	}
	return false
}

// Categorias padrão resolvidas por código estável.
const (
	CodeVendasGas = "VENDAS_GAS"
)

type Category struct {
	Id        ulid.ULID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      Types     `json:"type"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
