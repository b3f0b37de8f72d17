package purchase

import (
	"context"
	"errors"
	"math"
	"time"

	appErrors "github.com/maximiza-sistemas/backend-gestao-sub001/internal/errors"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

type CreatePurchaseRequest struct {
	ProductId        *ulid.ULID
	SupplierId       *ulid.ULID
	UnitPrice        float64
	Quantity         int
	IsInstallment    bool
	InstallmentCount int
	PurchaseDate     *time.Time
	Notes            string
}

// CreatePurchase grava a compra e, quando parcelada, gera as parcelas na
// mesma transação de banco. Compra à vista não gera parcela alguma.
func (s *Service) CreatePurchase(ctx context.Context, req *CreatePurchaseRequest) (*Purchase, error) {
	if req.UnitPrice <= 0 {
		return nil, appErrors.NewValidationError("unit_price", "deve ser maior que zero")
	}
	if req.Quantity <= 0 {
		return nil, appErrors.NewValidationError("quantity", "deve ser maior que zero")
	}
	if req.IsInstallment && req.InstallmentCount <= 1 {
		return nil, appErrors.NewValidationError("installment_count", "deve ser maior que um para compra parcelada")
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	now := time.Now()
	purchaseEntity := &Purchase{
		Id:               pkg.GenerateULIDObject(),
		ProductId:        req.ProductId,
		SupplierId:       req.SupplierId,
		UnitPrice:        req.UnitPrice,
		Quantity:         req.Quantity,
		TotalAmount:      pkg.RoundCents(req.UnitPrice * float64(req.Quantity)),
		IsInstallment:    req.IsInstallment,
		InstallmentCount: req.InstallmentCount,
		PurchaseDate:     purchaseDate,
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if !purchaseEntity.IsInstallment {
		purchaseEntity.InstallmentCount = 1
	}

	var installments []*Installment
	if purchaseEntity.IsInstallment {
		installments = amortize(purchaseEntity)
	}

	tx, err := s.Repository.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	if err := s.Repository.CreateWithTx(ctx, tx, purchaseEntity); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return nil, appErrors.NewDatabaseError(err)
	}

	if len(installments) > 0 {
		if err := s.Repository.CreateInstallmentsWithTx(ctx, tx, installments); err != nil {
			_ = s.Repository.RollbackTx(tx)
			return nil, appErrors.NewDatabaseError(err)
		}
	}

	if err := s.Repository.CommitTx(tx); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return purchaseEntity, nil
}

// amortize divide o total em parcelas mensais de valor igual, em centavos
// inteiros. A diferença de arredondamento é absorvida pela última parcela,
// então a soma das parcelas bate com o total da compra exatamente.
func amortize(purchaseEntity *Purchase) []*Installment {
	count := purchaseEntity.InstallmentCount
	totalCents := int64(math.Round(purchaseEntity.TotalAmount * 100))
	perCents := int64(math.Round(purchaseEntity.TotalAmount / float64(count) * 100))
	lastCents := totalCents - perCents*int64(count-1)

	now := time.Now()
	installments := make([]*Installment, 0, count)
	for i := 1; i <= count; i++ {
		cents := perCents
		if i == count {
			cents = lastCents
		}
		installments = append(installments, &Installment{
			Id:         pkg.GenerateULIDObject(),
			PurchaseId: purchaseEntity.Id,
			Number:     i,
			Amount:     float64(cents) / 100,
			DueDate:    purchaseEntity.PurchaseDate.AddDate(0, i, 0),
			PaidAmount: 0,
			Status:     StatusPendente,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return installments
}

func (s *Service) GetPurchaseByID(ctx context.Context, purchaseID ulid.ULID) (*Purchase, error) {
	purchaseEntity, err := s.Repository.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrPurchaseNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return purchaseEntity, nil
}

func (s *Service) ListPurchases(ctx context.Context, pagination *pkg.PaginationParams) ([]*Purchase, int64, error) {
	purchases, total, err := s.Repository.GetAll(ctx, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return purchases, total, nil
}

// GetInstallments lista as parcelas com o status VENCIDO derivado na leitura.
func (s *Service) GetInstallments(ctx context.Context, purchaseID ulid.ULID) ([]*Installment, error) {
	if _, err := s.GetPurchaseByID(ctx, purchaseID); err != nil {
		return nil, err
	}

	installments, err := s.Repository.GetInstallmentsByPurchaseID(ctx, purchaseID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	now := time.Now()
	for _, installment := range installments {
		installment.Status = installment.EffectiveStatus(now)
	}
	return installments, nil
}

type UpdateInstallmentRequest struct {
	PaidAmount float64
	PaidDate   *time.Time
}

// UpdateInstallment registra pagamento (total ou parcial) de uma parcela.
// O status só vira PAGO quando o pago cobre o valor da parcela; pagamento
// parcial mantém o status armazenado como está.
func (s *Service) UpdateInstallment(ctx context.Context, installmentID ulid.ULID, req *UpdateInstallmentRequest) (*Installment, error) {
	if req.PaidAmount < 0 {
		return nil, appErrors.NewValidationError("paid_amount", "não pode ser negativo")
	}

	installment, err := s.Repository.GetInstallmentByID(ctx, installmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrInstallmentNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	installment.PaidAmount = pkg.RoundCents(req.PaidAmount)
	installment.PaidDate = req.PaidDate
	if installment.PaidDate == nil && installment.PaidAmount > 0 {
		now := time.Now()
		installment.PaidDate = &now
	}

	if installment.PaidAmount >= pkg.RoundCents(installment.Amount) {
		installment.Status = StatusPago
	}
	installment.UpdatedAt = time.Now()

	if err := s.Repository.UpdateInstallment(ctx, installment); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return installment, nil
}
