package repository

import (
	"context"
	"errors"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
	"gorm.io/gorm"
)

// OrderRepository handles PurchaseOrder persistence.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseOrder, int64, error) {
	var items []entity.PurchaseOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if vendorID := filters["vendor_id"]; vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if sourceRequest := filters["source_request"]; sourceRequest != "" {
		query = query.Where("source_request = ?", sourceRequest)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("number ILIKE ? OR vendor ILIKE ? OR source_request ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("updated_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

func (r *OrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

// Update replaces the order and its full item set in one transaction.
func (r *OrderRepository) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", po.ID).Delete(&entity.POItem{}).Error; err != nil {
			return err
		}
		return tx.Save(po).Error
	})
}

// UpdateStatus writes only the status column.
func (r *OrderRepository) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("id = ?", po.ID).
		Updates(map[string]interface{}{
			"status":     po.Status,
			"updated_at": po.UpdatedAt,
		}).Error
}

// GenerateNumber issues the next PO-YYYYMMDD-NNNN for today.
func (r *OrderRepository) GenerateNumber(ctx context.Context) (string, error) {
	return nextNumber(ctx, r.db, &entity.PurchaseOrder{}, "PO")
}
