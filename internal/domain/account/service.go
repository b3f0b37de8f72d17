package account

import (
	"context"
	"errors"
	"strings"
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

type CreateAccountRequest struct {
	Code           string
	Name           string
	Type           AccountType
	InitialBalance float64
	Color          string
	Icon           string
}

func (s *Service) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	if !req.Type.IsValid() {
		return nil, appErrors.NewValidationError("type", "tipo de conta inválido")
	}

	code := strings.TrimSpace(strings.ToUpper(req.Code))
	if code == "" {
		return nil, appErrors.NewValidationError("code", "é obrigatório")
	}

	now := time.Now()
	accountEntity := &Account{
		Id:             pkg.GenerateULIDObject(),
		Code:           code,
		Name:           name,
		Type:           req.Type,
		InitialBalance: req.InitialBalance,
		CurrentBalance: req.InitialBalance,
		Color:          req.Color,
		Icon:           req.Icon,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repository.Create(ctx, accountEntity); err != nil {
		if isUniqueConstraintError(err) {
			return nil, appErrors.NewConflictError("conta")
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return accountEntity, nil
}

func (s *Service) GetAccountByID(ctx context.Context, accountID ulid.ULID) (*Account, error) {
	accountEntity, err := s.Repository.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return accountEntity, nil
}

func (s *Service) ListAccounts(ctx context.Context, includeInactive bool) ([]*Account, error) {
	accounts, err := s.Repository.GetAll(ctx, !includeInactive)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return accounts, nil
}

type UpdateAccountRequest struct {
	Name     *string
	Color    *string
	Icon     *string
	IsActive *bool
}

// UpdateAccount altera somente metadados. Saldos nunca passam por aqui.
func (s *Service) UpdateAccount(ctx context.Context, accountID ulid.ULID, req *UpdateAccountRequest) error {
	accountEntity, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		accountEntity.Name = name
	}

	if req.Color != nil {
		accountEntity.Color = *req.Color
	}

	if req.Icon != nil {
		accountEntity.Icon = *req.Icon
	}

	if req.IsActive != nil {
		accountEntity.IsActive = *req.IsActive
	}

	accountEntity.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, accountEntity); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// FindOrCreateByCode resolve uma conta padrão por código de negócio estável.
// O upsert é idempotente: corridas entre dois chamadores terminam com ambos
// lendo a mesma linha.
func (s *Service) FindOrCreateByCode(ctx context.Context, code, name string, accType AccountType) (*Account, error) {
	existing, err := s.Repository.GetByCode(ctx, code)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.NewDatabaseError(err)
	}

	now := time.Now()
	accountEntity := &Account{
		Id:             pkg.GenerateULIDObject(),
		Code:           code,
		Name:           name,
		Type:           accType,
		InitialBalance: 0,
		CurrentBalance: 0,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repository.Create(ctx, accountEntity); err != nil {
		if isUniqueConstraintError(err) {
			return s.refetchByCode(ctx, code)
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return accountEntity, nil
}

func (s *Service) refetchByCode(ctx context.Context, code string) (*Account, error) {
	existing, err := s.Repository.GetByCode(ctx, code)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return existing, nil
}

func (s *Service) GetTotalBalance(ctx context.Context) (float64, error) {
	total, err := s.Repository.GetTotalBalance(ctx)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return total, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "unique constraint") ||
		strings.Contains(errStr, "violates unique constraint")
}
