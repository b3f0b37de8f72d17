package infrastructure

import (
	"context"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/account"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

var _ account.Repository = (*AccountRepository)(nil)

func NewAccountRepository(db *gorm.DB) account.Repository {
	return &AccountRepository{DB: db}
}

type accountDB struct {
	Id             string    `gorm:"type:varchar(26);primaryKey;column:id"`
	Code           string    `gorm:"type:varchar(50);uniqueIndex:idx_accounts_code;not null;column:code"`
	Name           string    `gorm:"size:100;not null;column:name"`
	Type           string    `gorm:"type:varchar(20);not null;column:type"`
	InitialBalance float64   `gorm:"not null;column:initial_balance"`
	CurrentBalance float64   `gorm:"not null;column:current_balance"`
	Color          string    `gorm:"size:20;column:color"`
	Icon           string    `gorm:"size:50;column:icon"`
	IsActive       bool      `gorm:"not null;default:true;column:is_active"`
	CreatedAt      time.Time `gorm:"not null;column:created_at"`
	UpdatedAt      time.Time `gorm:"not null;column:updated_at"`
}

func (accountDB) TableName() string {
	return "accounts"
}

func toDomainAccount(adb *accountDB) (*account.Account, error) {
	id, err := pkg.ParseULID(adb.Id)
	if err != nil {
		return nil, err
	}
	return &account.Account{
		Id:             id,
		Code:           adb.Code,
		Name:           adb.Name,
		Type:           account.AccountType(adb.Type),
		InitialBalance: adb.InitialBalance,
		CurrentBalance: adb.CurrentBalance,
		Color:          adb.Color,
		Icon:           adb.Icon,
		IsActive:       adb.IsActive,
		CreatedAt:      adb.CreatedAt,
		UpdatedAt:      adb.UpdatedAt,
	}, nil
}

func toDBAccount(a *account.Account) *accountDB {
	return &accountDB{
		Id:             a.Id.String(),
		Code:           a.Code,
		Name:           a.Name,
		Type:           string(a.Type),
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
		Color:          a.Color,
		Icon:           a.Icon,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	return r.DB.WithContext(ctx).Create(toDBAccount(a)).Error
}

func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	adb := toDBAccount(a)
	return r.DB.WithContext(ctx).Model(&accountDB{}).Where("id = ?", adb.Id).
		Select("name", "color", "icon", "is_active", "updated_at").
		Updates(adb).Error
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID ulid.ULID) (*account.Account, error) {
	var adb accountDB
	err := r.DB.WithContext(ctx).Where("id = ?", accountID.String()).First(&adb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccount(&adb)
}

func (r *AccountRepository) GetByCode(ctx context.Context, code string) (*account.Account, error) {
	adb, err := query.New[accountDB](r.DB, "accounts").
		Context(ctx).
		Where("code = ?", code).
		First()
	if err != nil {
		return nil, err
	}
	return toDomainAccount(adb)
}

func (r *AccountRepository) GetAll(ctx context.Context, onlyActive bool) ([]*account.Account, error) {
	q := query.New[accountDB](r.DB, "accounts").
		Context(ctx).
		Order("name ASC")
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	rows, err := q.Find()
	if err != nil {
		return nil, err
	}

	out := make([]*account.Account, 0, len(rows))
	for i := range rows {
		item, err := toDomainAccount(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *AccountRepository) GetTotalBalance(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).Model(&accountDB{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(current_balance), 0)").Scan(&total).Error
	return total, err
}

// ApplyBalanceDeltaWithTx soma o delta direto na linha; a atomicidade por
// linha do UPDATE dispensa lock de aplicação.
func (r *AccountRepository) ApplyBalanceDeltaWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID, delta float64) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Model(&accountDB{}).Where("id = ?", accountID.String()).
		UpdateColumn("current_balance", gorm.Expr("current_balance + ?", delta)).
		UpdateColumn("updated_at", time.Now()).Error
}
