package infrastructure

import (
	"context"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/category"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

var _ category.Repository = (*CategoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &CategoryRepository{DB: db}
}

type categoryDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	Code      string    `gorm:"type:varchar(50);uniqueIndex:idx_categories_code;not null;column:code"`
	Name      string    `gorm:"size:100;not null;column:name"`
	Type      string    `gorm:"type:varchar(10);not null;column:type"`
	Color     string    `gorm:"size:20;column:color"`
	Icon      string    `gorm:"size:50;column:icon"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func (categoryDB) TableName() string {
	return "categories"
}

func toDomainCategory(cdb *categoryDB) (*category.Category, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}
	return &category.Category{
		Id:        id,
		Code:      cdb.Code,
		Name:      cdb.Name,
		Type:      category.Types(cdb.Type),
		Color:     cdb.Color,
		Icon:      cdb.Icon,
		IsActive:  cdb.IsActive,
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBCategory(c *category.Category) *categoryDB {
	return &categoryDB{
		Id:        c.Id.String(),
		Code:      c.Code,
		Name:      c.Name,
		Type:      string(c.Type),
		Color:     c.Color,
		Icon:      c.Icon,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	return r.DB.WithContext(ctx).Create(toDBCategory(c)).Error
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	cdb := toDBCategory(c)
	return r.DB.WithContext(ctx).Model(&categoryDB{}).Where("id = ?", cdb.Id).
		Select("name", "color", "icon", "is_active", "updated_at").
		Updates(cdb).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID ulid.ULID) (*category.Category, error) {
	var cdb categoryDB
	err := r.DB.WithContext(ctx).Where("id = ?", categoryID.String()).First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCategory(&cdb)
}

func (r *CategoryRepository) GetByCode(ctx context.Context, code string) (*category.Category, error) {
	cdb, err := query.New[categoryDB](r.DB, "categories").
		Context(ctx).
		Where("code = ?", code).
		First()
	if err != nil {
		return nil, err
	}
	return toDomainCategory(cdb)
}

func (r *CategoryRepository) GetAll(ctx context.Context, onlyActive bool) ([]*category.Category, error) {
	q := query.New[categoryDB](r.DB, "categories").
		Context(ctx).
		Order("type ASC, name ASC")
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	rows, err := q.Find()
	if err != nil {
		return nil, err
	}

	out := make([]*category.Category, 0, len(rows))
	for i := range rows {
		item, err := toDomainCategory(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
