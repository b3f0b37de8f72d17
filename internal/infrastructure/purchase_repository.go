package infrastructure

import (
	"context"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/purchase"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

var _ purchase.Repository = (*PurchaseRepository)(nil)

func NewPurchaseRepository(db *gorm.DB) purchase.Repository {
	return &PurchaseRepository{DB: db}
}

type purchaseDB struct {
	Id               string    `gorm:"type:varchar(26);primaryKey;column:id"`
	ProductId        *string   `gorm:"type:varchar(26);index;column:product_id"`
	SupplierId       *string   `gorm:"type:varchar(26);index;column:supplier_id"`
	UnitPrice        float64   `gorm:"not null;column:unit_price"`
	Quantity         int       `gorm:"not null;column:quantity"`
	TotalAmount      float64   `gorm:"not null;column:total_amount"`
	IsInstallment    bool      `gorm:"not null;default:false;column:is_installment"`
	InstallmentCount int       `gorm:"not null;default:1;column:installment_count"`
	PurchaseDate     time.Time `gorm:"not null;column:purchase_date"`
	Notes            string    `gorm:"size:500;column:notes"`
	CreatedAt        time.Time `gorm:"not null;column:created_at"`
	UpdatedAt        time.Time `gorm:"not null;column:updated_at"`
}

func (purchaseDB) TableName() string {
	return "purchases"
}

type purchaseInstallmentDB struct {
	Id         string     `gorm:"type:varchar(26);primaryKey;column:id"`
	PurchaseId string     `gorm:"type:varchar(26);index;not null;column:purchase_id"`
	Number     int        `gorm:"not null;column:number"`
	Amount     float64    `gorm:"not null;column:amount"`
	DueDate    time.Time  `gorm:"not null;index;column:due_date"`
	PaidAmount float64    `gorm:"not null;default:0;column:paid_amount"`
	PaidDate   *time.Time `gorm:"column:paid_date"`
	Status     string     `gorm:"type:varchar(10);not null;column:status"`
	CreatedAt  time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt  time.Time  `gorm:"not null;column:updated_at"`
}

func (purchaseInstallmentDB) TableName() string {
	return "purchase_installments"
}

func toDomainPurchase(pdb *purchaseDB) (*purchase.Purchase, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}
	productID, err := pkg.ParseULIDPtr(pdb.ProductId)
	if err != nil {
		return nil, err
	}
	supplierID, err := pkg.ParseULIDPtr(pdb.SupplierId)
	if err != nil {
		return nil, err
	}
	return &purchase.Purchase{
		Id:               id,
		ProductId:        productID,
		SupplierId:       supplierID,
		UnitPrice:        pdb.UnitPrice,
		Quantity:         pdb.Quantity,
		TotalAmount:      pdb.TotalAmount,
		IsInstallment:    pdb.IsInstallment,
		InstallmentCount: pdb.InstallmentCount,
		PurchaseDate:     pdb.PurchaseDate,
		Notes:            pdb.Notes,
		CreatedAt:        pdb.CreatedAt,
		UpdatedAt:        pdb.UpdatedAt,
	}, nil
}

func toDBPurchase(p *purchase.Purchase) *purchaseDB {
	return &purchaseDB{
		Id:               p.Id.String(),
		ProductId:        pkg.ULIDPtrToStringPtr(p.ProductId),
		SupplierId:       pkg.ULIDPtrToStringPtr(p.SupplierId),
		UnitPrice:        p.UnitPrice,
		Quantity:         p.Quantity,
		TotalAmount:      p.TotalAmount,
		IsInstallment:    p.IsInstallment,
		InstallmentCount: p.InstallmentCount,
		PurchaseDate:     p.PurchaseDate,
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toDomainInstallment(idb *purchaseInstallmentDB) (*purchase.Installment, error) {
	id, err := pkg.ParseULID(idb.Id)
	if err != nil {
		return nil, err
	}
	purchaseID, err := pkg.ParseULID(idb.PurchaseId)
	if err != nil {
		return nil, err
	}
	return &purchase.Installment{
		Id:         id,
		PurchaseId: purchaseID,
		Number:     idb.Number,
		Amount:     idb.Amount,
		DueDate:    idb.DueDate,
		PaidAmount: idb.PaidAmount,
		PaidDate:   idb.PaidDate,
		Status:     purchase.InstallmentStatus(idb.Status),
		CreatedAt:  idb.CreatedAt,
		UpdatedAt:  idb.UpdatedAt,
	}, nil
}

func toDBInstallment(i *purchase.Installment) *purchaseInstallmentDB {
	return &purchaseInstallmentDB{
		Id:         i.Id.String(),
		PurchaseId: i.PurchaseId.String(),
		Number:     i.Number,
		Amount:     i.Amount,
		DueDate:    i.DueDate,
		PaidAmount: i.PaidAmount,
		PaidDate:   i.PaidDate,
		Status:     string(i.Status),
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

func (r *PurchaseRepository) BeginTx(ctx context.Context) (interface{}, error) {
	return r.DB.WithContext(ctx).Begin(), nil
}

func (r *PurchaseRepository) CommitTx(tx interface{}) error {
	return tx.(*gorm.DB).Commit().Error
}

func (r *PurchaseRepository) RollbackTx(tx interface{}) error {
	return tx.(*gorm.DB).Rollback().Error
}

func (r *PurchaseRepository) CreateWithTx(ctx context.Context, tx interface{}, p *purchase.Purchase) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Create(toDBPurchase(p)).Error
}

func (r *PurchaseRepository) CreateInstallmentsWithTx(ctx context.Context, tx interface{}, installments []*purchase.Installment) error {
	dbTx := tx.(*gorm.DB)
	rows := make([]*purchaseInstallmentDB, 0, len(installments))
	for _, installment := range installments {
		rows = append(rows, toDBInstallment(installment))
	}
	return dbTx.WithContext(ctx).Create(rows).Error
}

func (r *PurchaseRepository) GetByID(ctx context.Context, purchaseID ulid.ULID) (*purchase.Purchase, error) {
	var pdb purchaseDB
	err := r.DB.WithContext(ctx).Where("id = ?", purchaseID.String()).First(&pdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainPurchase(&pdb)
}

func (r *PurchaseRepository) GetAll(ctx context.Context, pagination *pkg.PaginationParams) ([]*purchase.Purchase, int64, error) {
	pagination = pkg.NormalizePagination(pagination)
	q := query.New[purchaseDB](r.DB, "purchases").
		Context(ctx).
		Order("purchase_date DESC, created_at DESC")

	result, err := query.Paginate(q, query.NewPage(pagination.Page, pagination.Limit), toDomainPurchase)
	if err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

func (r *PurchaseRepository) GetInstallmentByID(ctx context.Context, installmentID ulid.ULID) (*purchase.Installment, error) {
	var idb purchaseInstallmentDB
	err := r.DB.WithContext(ctx).Where("id = ?", installmentID.String()).First(&idb).Error
	if err != nil {
		return nil, err
	}
	return toDomainInstallment(&idb)
}

func (r *PurchaseRepository) GetInstallmentsByPurchaseID(ctx context.Context, purchaseID ulid.ULID) ([]*purchase.Installment, error) {
	var rows []purchaseInstallmentDB
	err := r.DB.WithContext(ctx).Where("purchase_id = ?", purchaseID.String()).
		Order("number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*purchase.Installment, 0, len(rows))
	for i := range rows {
		item, err := toDomainInstallment(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *PurchaseRepository) UpdateInstallment(ctx context.Context, installment *purchase.Installment) error {
	idb := toDBInstallment(installment)
	return r.DB.WithContext(ctx).Model(&purchaseInstallmentDB{}).Where("id = ?", idb.Id).
		Select("paid_amount", "paid_date", "status", "updated_at").
		Updates(idb).Error
}
