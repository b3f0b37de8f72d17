package infrastructure

import (
	"context"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/domain/order"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg"
	"github.com/maximiza-sistemas/backend-gestao-sub001/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

var _ order.Repository = (*OrderRepository)(nil)

func NewOrderRepository(db *gorm.DB) order.Repository {
	return &OrderRepository{DB: db}
}

type orderDB struct {
	Id            string     `gorm:"type:varchar(26);primaryKey;column:id"`
	ClientId      *string    `gorm:"type:varchar(26);index;column:client_id"`
	TotalValue    float64    `gorm:"not null;column:total_value"`
	Discount      float64    `gorm:"not null;default:0;column:discount"`
	PaidAmount    float64    `gorm:"not null;default:0;column:paid_amount"`
	Status        string     `gorm:"type:varchar(15);not null;index;column:status"`
	PaymentStatus string     `gorm:"type:varchar(10);not null;index;column:payment_status"`
	PaymentMethod string     `gorm:"size:30;column:payment_method"`
	Notes         string     `gorm:"size:500;column:notes"`
	DeliveredAt   *time.Time `gorm:"column:delivered_at"`
	CreatedAt     time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt     time.Time  `gorm:"not null;column:updated_at"`
}

func (orderDB) TableName() string {
	return "orders"
}

type orderPaymentDB struct {
	Id            string    `gorm:"type:varchar(26);primaryKey;column:id"`
	OrderId       string    `gorm:"type:varchar(26);index;not null;column:order_id"`
	Amount        float64   `gorm:"not null;column:amount"`
	PaymentMethod string    `gorm:"size:30;column:payment_method"`
	Notes         string    `gorm:"size:500;column:notes"`
	UserId        *string   `gorm:"type:varchar(26);column:user_id"`
	PaymentDate   time.Time `gorm:"not null;column:payment_date"`
	CreatedAt     time.Time `gorm:"not null;column:created_at"`
}

func (orderPaymentDB) TableName() string {
	return "order_payments"
}

func toDomainOrder(odb *orderDB) (*order.Order, error) {
	id, err := pkg.ParseULID(odb.Id)
	if err != nil {
		return nil, err
	}
	clientID, err := pkg.ParseULIDPtr(odb.ClientId)
	if err != nil {
		return nil, err
	}
	return &order.Order{
		Id:            id,
		ClientId:      clientID,
		TotalValue:    odb.TotalValue,
		Discount:      odb.Discount,
		PaidAmount:    odb.PaidAmount,
		Status:        order.OrderStatus(odb.Status),
		PaymentStatus: order.PaymentStatus(odb.PaymentStatus),
		PaymentMethod: odb.PaymentMethod,
		Notes:         odb.Notes,
		DeliveredAt:   odb.DeliveredAt,
		CreatedAt:     odb.CreatedAt,
		UpdatedAt:     odb.UpdatedAt,
	}, nil
}

func toDBOrder(o *order.Order) *orderDB {
	return &orderDB{
		Id:            o.Id.String(),
		ClientId:      pkg.ULIDPtrToStringPtr(o.ClientId),
		TotalValue:    o.TotalValue,
		Discount:      o.Discount,
		PaidAmount:    o.PaidAmount,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		PaymentMethod: o.PaymentMethod,
		Notes:         o.Notes,
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toDomainOrderPayment(pdb *orderPaymentDB) (*order.Payment, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}
	orderID, err := pkg.ParseULID(pdb.OrderId)
	if err != nil {
		return nil, err
	}
	userID, err := pkg.ParseULIDPtr(pdb.UserId)
	if err != nil {
		return nil, err
	}
	return &order.Payment{
		Id:            id,
		OrderId:       orderID,
		Amount:        pdb.Amount,
		PaymentMethod: pdb.PaymentMethod,
		Notes:         pdb.Notes,
		UserId:        userID,
		PaymentDate:   pdb.PaymentDate,
		CreatedAt:     pdb.CreatedAt,
	}, nil
}

func toDBOrderPayment(p *order.Payment) *orderPaymentDB {
	return &orderPaymentDB{
		Id:            p.Id.String(),
		OrderId:       p.OrderId.String(),
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		UserId:        pkg.ULIDPtrToStringPtr(p.UserId),
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.DB.WithContext(ctx).Create(toDBOrder(o)).Error
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	odb := toDBOrder(o)
	return r.DB.WithContext(ctx).Model(&orderDB{}).Where("id = ?", odb.Id).Updates(odb).Error
}

func (r *OrderRepository) UpdateWithTx(ctx context.Context, tx interface{}, o *order.Order) error {
	dbTx := tx.(*gorm.DB)
	odb := toDBOrder(o)
	return dbTx.WithContext(ctx).Model(&orderDB{}).Where("id = ?", odb.Id).
		Select("total_value", "discount", "paid_amount", "status", "payment_status",
			"payment_method", "notes", "delivered_at", "updated_at").
		Updates(odb).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID ulid.ULID) (*order.Order, error) {
	var odb orderDB
	err := r.DB.WithContext(ctx).Where("id = ?", orderID.String()).First(&odb).Error
	if err != nil {
		return nil, err
	}
	return toDomainOrder(&odb)
}

func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, tx interface{}, orderID ulid.ULID) (*order.Order, error) {
	dbTx := tx.(*gorm.DB)
	var odb orderDB
	err := dbTx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", orderID.String()).
		First(&odb).Error
	if err != nil {
		return nil, err
	}
	return toDomainOrder(&odb)
}

func (r *OrderRepository) GetAll(ctx context.Context, filters *order.Filters, pagination *pkg.PaginationParams) ([]*order.Order, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("orders")

	if filters != nil {
		if filters.Status != "" {
			baseQuery = baseQuery.Where("status = ?", string(filters.Status))
		}
		if filters.PaymentStatus != "" {
			baseQuery = baseQuery.Where("payment_status = ?", string(filters.PaymentStatus))
		}
		if filters.ClientId != nil {
			baseQuery = baseQuery.Where("client_id = ?", filters.ClientId.String())
		}
	}

	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainOrder)
}

func (r *OrderRepository) CreatePaymentWithTx(ctx context.Context, tx interface{}, p *order.Payment) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Create(toDBOrderPayment(p)).Error
}

func (r *OrderRepository) DeletePaymentWithTx(ctx context.Context, tx interface{}, paymentID ulid.ULID) error {
	dbTx := tx.(*gorm.DB)
	result := dbTx.WithContext(ctx).Where("id = ?", paymentID.String()).Delete(&orderPaymentDB{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrderRepository) GetPaymentByID(ctx context.Context, paymentID ulid.ULID) (*order.Payment, error) {
	var pdb orderPaymentDB
	err := r.DB.WithContext(ctx).Where("id = ?", paymentID.String()).First(&pdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainOrderPayment(&pdb)
}

func (r *OrderRepository) GetPaymentsByOrderID(ctx context.Context, orderID ulid.ULID) ([]*order.Payment, error) {
	var rows []orderPaymentDB
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID.String()).
		Order("payment_date ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*order.Payment, 0, len(rows))
	for i := range rows {
		item, err := toDomainOrderPayment(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *OrderRepository) CountPaymentsByOrderID(ctx context.Context, orderID ulid.ULID) (int64, error) {
	return query.New[orderPaymentDB](r.DB, "order_payments").
		Context(ctx).
		Where("order_id = ?", orderID.String()).
		Count()
}
