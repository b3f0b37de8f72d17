package account

type AccountType string

const (
	TypeBanco           AccountType = "BANCO"
	TypeDinheiro        AccountType = "DINHEIRO"
	TypeCarteiraDigital AccountType = "CARTEIRA_DIGITAL"
)

func (t AccountType) IsValid() bool {
	switch t {
	case TypeBanco, TypeDinheiro, TypeCarteiraDigital:
		return true
	}
	return false
}

// Contas padrão resolvidas por código de negócio estável (upsert idempotente).
const (
	CodeCaixa = "CAIXA"
)
