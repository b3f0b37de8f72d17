package infrastructure

import (
	"context"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/ledger"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository struct {
	DB *gorm.DB
}

var _ ledger.Repository = (*TransactionRepository)(nil)

func NewTransactionRepository(db *gorm.DB) ledger.Repository {
	return &TransactionRepository{DB: db}
}

// O índice único em order_id é o que garante, no nível do banco, no máximo
// uma transação por pedido; nulos não colidem entre si no postgres.
type transactionDB struct {
	Id                   string     `gorm:"type:varchar(26);primaryKey;column:id"`
	Code                 string     `gorm:"type:varchar(30);uniqueIndex:idx_transactions_code;not null;column:code"`
	Type                 string     `gorm:"type:varchar(15);not null;column:type"`
	CategoryId           *string    `gorm:"type:varchar(26);index;column:category_id"`
	AccountId            string     `gorm:"type:varchar(26);index;not null;column:account_id"`
	DestinationAccountId *string    `gorm:"type:varchar(26);index;column:destination_account_id"`
	OrderId              *string    `gorm:"type:varchar(26);uniqueIndex:idx_transactions_order_id;column:order_id"`
	ClientId             *string    `gorm:"type:varchar(26);index;column:client_id"`
	SupplierId           *string    `gorm:"type:varchar(26);index;column:supplier_id"`
	Description          string     `gorm:"size:255;not null;column:description"`
	Amount               float64    `gorm:"not null;column:amount"`
	PaymentMethod        string     `gorm:"size:30;column:payment_method"`
	TransactionDate      time.Time  `gorm:"not null;index;column:transaction_date"`
	DueDate              *time.Time `gorm:"column:due_date"`
	PaymentDate          *time.Time `gorm:"column:payment_date"`
	Status               string     `gorm:"type:varchar(10);not null;index;column:status"`
	InstallmentNumber    *int       `gorm:"column:installment_number"`
	TotalInstallments    *int       `gorm:"column:total_installments"`
	ParentTransactionId  *string    `gorm:"type:varchar(26);index;column:parent_transaction_id"`
	Notes                string     `gorm:"size:500;column:notes"`
	CreatedAt            time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt            time.Time  `gorm:"not null;column:updated_at"`

	CategoryName           string `gorm:"->;column:category_name"`
	AccountName            string `gorm:"->;column:account_name"`
	DestinationAccountName string `gorm:"->;column:destination_account_name"`
}

func (transactionDB) TableName() string {
	return "transactions"
}

func toDomainTransaction(tdb *transactionDB) (*ledger.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	accountID, err := pkg.ParseULID(tdb.AccountId)
	if err != nil {
		return nil, err
	}
	categoryID, err := pkg.ParseULIDPtr(tdb.CategoryId)
	if err != nil {
		return nil, err
	}
	destinationID, err := pkg.ParseULIDPtr(tdb.DestinationAccountId)
	if err != nil {
		return nil, err
	}
	orderID, err := pkg.ParseULIDPtr(tdb.OrderId)
	if err != nil {
		return nil, err
	}
	clientID, err := pkg.ParseULIDPtr(tdb.ClientId)
	if err != nil {
		return nil, err
	}
	supplierID, err := pkg.ParseULIDPtr(tdb.SupplierId)
	if err != nil {
		return nil, err
	}
	parentID, err := pkg.ParseULIDPtr(tdb.ParentTransactionId)
	if err != nil {
		return nil, err
	}

	return &ledger.Transaction{
		Id:                     id,
		Code:                   tdb.Code,
		Type:                   ledger.Types(tdb.Type),
		CategoryId:             categoryID,
		AccountId:              accountID,
		DestinationAccountId:   destinationID,
		OrderId:                orderID,
		ClientId:               clientID,
		SupplierId:             supplierID,
		Description:            tdb.Description,
		Amount:                 tdb.Amount,
		PaymentMethod:          tdb.PaymentMethod,
		TransactionDate:        tdb.TransactionDate,
		DueDate:                tdb.DueDate,
		PaymentDate:            tdb.PaymentDate,
		Status:                 ledger.Status(tdb.Status),
		InstallmentNumber:      tdb.InstallmentNumber,
		TotalInstallments:      tdb.TotalInstallments,
		ParentTransactionId:    parentID,
		Notes:                  tdb.Notes,
		CreatedAt:              tdb.CreatedAt,
		UpdatedAt:              tdb.UpdatedAt,
		CategoryName:           tdb.CategoryName,
		AccountName:            tdb.AccountName,
		DestinationAccountName: tdb.DestinationAccountName,
	}, nil
}

func toDBTransaction(t *ledger.Transaction) *transactionDB {
	return &transactionDB{
		Id:                   t.Id.String(),
		Code:                 t.Code,
		Type:                 string(t.Type),
		CategoryId:           pkg.ULIDPtrToStringPtr(t.CategoryId),
		AccountId:            t.AccountId.String(),
		DestinationAccountId: pkg.ULIDPtrToStringPtr(t.DestinationAccountId),
		OrderId:              pkg.ULIDPtrToStringPtr(t.OrderId),
		ClientId:             pkg.ULIDPtrToStringPtr(t.ClientId),
		SupplierId:           pkg.ULIDPtrToStringPtr(t.SupplierId),
		Description:          t.Description,
		Amount:               t.Amount,
		PaymentMethod:        t.PaymentMethod,
		TransactionDate:      t.TransactionDate,
		DueDate:              t.DueDate,
		PaymentDate:          t.PaymentDate,
		Status:               string(t.Status),
		InstallmentNumber:    t.InstallmentNumber,
		TotalInstallments:    t.TotalInstallments,
		ParentTransactionId:  pkg.ULIDPtrToStringPtr(t.ParentTransactionId),
		Notes:                t.Notes,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

func (r *TransactionRepository) BeginTx(ctx context.Context) (interface{}, error) {
	return r.DB.WithContext(ctx).Begin(), nil
}

func (r *TransactionRepository) CommitTx(tx interface{}) error {
	return tx.(*gorm.DB).Commit().Error
}

func (r *TransactionRepository) RollbackTx(tx interface{}) error {
	return tx.(*gorm.DB).Rollback().Error
}

func (r *TransactionRepository) CreateWithTx(ctx context.Context, tx interface{}, t *ledger.Transaction) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Create(toDBTransaction(t)).Error
}

func (r *TransactionRepository) UpdateStatusWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, status ledger.Status, paymentDate *time.Time) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Model(&transactionDB{}).Where("id = ?", transactionID.String()).
		UpdateColumns(map[string]interface{}{
			"status":       string(status),
			"payment_date": paymentDate,
			"updated_at":   time.Now(),
		}).Error
}

func (r *TransactionRepository) DeleteWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Where("id = ?", transactionID.String()).Delete(&transactionDB{}).Error
}

// Update grava só os campos descritivos. O Select fixa as colunas: limpar um
// campo para vazio também escreve, e status/payment_date só mudam via
// UpdateStatusWithTx.
func (r *TransactionRepository) Update(ctx context.Context, t *ledger.Transaction) error {
	tdb := toDBTransaction(t)
	return r.DB.WithContext(ctx).Model(&transactionDB{}).Where("id = ?", tdb.Id).
		Select("description", "amount", "category_id", "payment_method",
			"transaction_date", "due_date", "notes", "client_id", "supplier_id", "updated_at").
		Updates(tdb).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, transactionID ulid.ULID) (*ledger.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.*, c.name as category_name, a.name as account_name, da.name as destination_account_name").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Joins("LEFT JOIN accounts a ON t.account_id = a.id").
		Joins("LEFT JOIN accounts da ON t.destination_account_id = da.id").
		Where("t.id = ?", transactionID.String()).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx interface{}, transactionID ulid.ULID) (*ledger.Transaction, error) {
	dbTx := tx.(*gorm.DB)
	var tdb transactionDB
	err := dbTx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", transactionID.String()).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetByOrderIDForUpdate(ctx context.Context, tx interface{}, orderID ulid.ULID) (*ledger.Transaction, error) {
	dbTx := tx.(*gorm.DB)
	var tdb transactionDB
	err := dbTx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID.String()).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetByOrderID(ctx context.Context, orderID ulid.ULID) (*ledger.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID.String()).First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetAll(ctx context.Context, filters *ledger.Filters, pagination *pkg.PaginationParams) ([]*ledger.Transaction, int64, error) {
	countQuery := r.DB.WithContext(ctx).Table("transactions t")
	dataQuery := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.*, c.name as category_name, a.name as account_name, da.name as destination_account_name").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Joins("LEFT JOIN accounts a ON t.account_id = a.id").
		Joins("LEFT JOIN accounts da ON t.destination_account_id = da.id")

	if filters != nil {
		if filters.StartDate != nil {
			countQuery = countQuery.Where("t.transaction_date >= ?", *filters.StartDate)
			dataQuery = dataQuery.Where("t.transaction_date >= ?", *filters.StartDate)
		}
		if filters.EndDate != nil {
			countQuery = countQuery.Where("t.transaction_date <= ?", *filters.EndDate)
			dataQuery = dataQuery.Where("t.transaction_date <= ?", *filters.EndDate)
		}
		if filters.AccountId != nil {
			accountID := filters.AccountId.String()
			countQuery = countQuery.Where("t.account_id = ? OR t.destination_account_id = ?", accountID, accountID)
			dataQuery = dataQuery.Where("t.account_id = ? OR t.destination_account_id = ?", accountID, accountID)
		}
		if filters.CategoryId != nil {
			countQuery = countQuery.Where("t.category_id = ?", filters.CategoryId.String())
			dataQuery = dataQuery.Where("t.category_id = ?", filters.CategoryId.String())
		}
		if filters.OrderId != nil {
			countQuery = countQuery.Where("t.order_id = ?", filters.OrderId.String())
			dataQuery = dataQuery.Where("t.order_id = ?", filters.OrderId.String())
		}
		if filters.ClientId != nil {
			countQuery = countQuery.Where("t.client_id = ?", filters.ClientId.String())
			dataQuery = dataQuery.Where("t.client_id = ?", filters.ClientId.String())
		}
		if filters.Type != "" {
			countQuery = countQuery.Where("t.type = ?", string(filters.Type))
			dataQuery = dataQuery.Where("t.type = ?", string(filters.Type))
		}
		if filters.Status != "" {
			countQuery = countQuery.Where("t.status = ?", string(filters.Status))
			dataQuery = dataQuery.Where("t.status = ?", string(filters.Status))
		}
	}

	pagination = pkg.NormalizePagination(pagination)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []transactionDB
	err := dataQuery.Order("t.transaction_date DESC, t.created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]*ledger.Transaction, 0, len(rows))
	for i := range rows {
		item, err := toDomainTransaction(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}
	return out, total, nil
}
