package ledger

type Types string

const (
	Receita       Types = "RECEITA"
	Despesa       Types = "DESPESA"
	Transferencia Types = "TRANSFERENCIA"
	Deposito      Types = "DEPOSITO"
)

func (t Types) IsValid() bool {
	switch t {
	case Receita, Despesa, Transferencia, Deposito:
		return true
	}
	return false
}

// RequiresCategory indica os tipos que classificam receita/despesa; as
// movimentações entre contas não carregam categoria.
func (t Types) RequiresCategory() bool {
	return t == Receita || t == Despesa
}

// RequiresDestination indica os tipos que movimentam duas contas.
func (t Types) RequiresDestination() bool {
	return t == Transferencia || t == Deposito
}

type Status string

const (
	StatusPendente  Status = "PENDENTE"
	StatusPago      Status = "PAGO"
	StatusCancelado Status = "CANCELADO"
	StatusVencido   Status = "VENCIDO"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPendente, StatusPago, StatusCancelado, StatusVencido:
		return true
	}
	return false
}

// BalanceEffect é a tabela de efeito sobre saldos quando uma transação entra
// em PAGO. Transferência e depósito são modelados de forma idêntica: debitam
// a conta de origem e creditam a de destino. Sair de PAGO aplica o inverso.
func BalanceEffect(t Types, amount float64) (sourceDelta, destinationDelta float64) {
	switch t {
	case Receita:
		return amount, 0
	case Despesa:
		return -amount, 0
	case Transferencia, Deposito:
		return -amount, amount
	}
	return 0, 0
}
