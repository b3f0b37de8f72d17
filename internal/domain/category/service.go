package category

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

type CreateCategoryRequest struct {
	Code  string
	Name  string
	Type  Types
	Color string
	Icon  string
}

func (s *Service) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	if !req.Type.IsValid() {
		return nil, appErrors.NewValidationError("type", "deve ser RECEITA ou DESPESA")
	}

	code := strings.TrimSpace(strings.ToUpper(req.Code))
	if code == "" {
		return nil, appErrors.NewValidationError("code", "é obrigatório")
	}

	now := time.Now()
	categoryEntity := &Category{
		Id:        pkg.GenerateULIDObject(),
		Code:      code,
		Name:      name,
		Type:      req.Type,
		Color:     req.Color,
		Icon:      req.Icon,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.Create(ctx, categoryEntity); err != nil {
		if isUniqueConstraintError(err) {
			return nil, appErrors.NewConflictError("categoria")
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return categoryEntity, nil
}

func (s *Service) GetCategoryByID(ctx context.Context, categoryID ulid.ULID) (*Category, error) {
	categoryEntity, err := s.Repository.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrCategoryNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return categoryEntity, nil
}

func (s *Service) ListCategories(ctx context.Context, includeInactive bool) ([]*Category, error) {
	categories, err := s.Repository.GetAll(ctx, !includeInactive)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return categories, nil
}

type UpdateCategoryRequest struct {
	Name     *string
	Color    *string
	Icon     *string
	IsActive *bool
}

// UpdateCategory altera somente metadados de exibição; tipo e código são
// imutáveis depois que a categoria passa a ser referenciada por transações.
func (s *Service) UpdateCategory(ctx context.Context, categoryID ulid.ULID, req *UpdateCategoryRequest) error {
	categoryEntity, err := s.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		categoryEntity.Name = name
	}

	if req.Color != nil {
		categoryEntity.Color = *req.Color
	}

	if req.Icon != nil {
		categoryEntity.Icon = *req.Icon
	}

	if req.IsActive != nil {
		categoryEntity.IsActive = *req.IsActive
	}

	categoryEntity.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, categoryEntity); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// FindOrCreateByCode resolve uma categoria padrão por código estável, com
// upsert idempotente (corridas caem na releitura da linha existente).
func (s *Service) FindOrCreateByCode(ctx context.Context, code, name string, catType Types) (*Category, error) {
	existing, err := s.Repository.GetByCode(ctx, code)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.NewDatabaseError(err)
	}

	now := time.Now()
	categoryEntity := &Category{
		Id:        pkg.GenerateULIDObject(),
		Code:      code,
		Name:      name,
		Type:      catType,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.Create(ctx, categoryEntity); err != nil {
		if isUniqueConstraintError(err) {
			refetched, rerr := s.Repository.GetByCode(ctx, code)
			if rerr != nil {
				return nil, appErrors.NewDatabaseError(rerr)
			}
			return refetched, nil
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return categoryEntity, nil
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
