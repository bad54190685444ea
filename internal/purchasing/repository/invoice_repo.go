package repository

import (
	"context"
	"errors"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
	"gorm.io/gorm"
)

// InvoiceRepository handles PurchaseInvoice persistence.
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseInvoice, int64, error) {
	var items []entity.PurchaseInvoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseInvoice{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if sourceOrder := filters["source_order"]; sourceOrder != "" {
		query = query.Where("source_order = ?", sourceOrder)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("number ILIKE ? OR vendor ILIKE ? OR source_order ILIKE ?",
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

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	var pi entity.PurchaseInvoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&pi).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pi, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, pi *entity.PurchaseInvoice) error {
	return r.db.WithContext(ctx).Create(pi).Error
}

// Update replaces the invoice and its full item set in one transaction.
func (r *InvoiceRepository) Update(ctx context.Context, pi *entity.PurchaseInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", pi.ID).Delete(&entity.PIItem{}).Error; err != nil {
			return err
		}
		return tx.Save(pi).Error
	})
}

// UpdateStatus writes status and payment date only.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, pi *entity.PurchaseInvoice) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseInvoice{}).
		Where("id = ?", pi.ID).
		Updates(map[string]interface{}{
			"status":       pi.Status,
			"payment_date": pi.PaymentDate,
			"updated_at":   pi.UpdatedAt,
		}).Error
}

// GenerateNumber issues the next PI-YYYYMMDD-NNNN for today.
func (r *InvoiceRepository) GenerateNumber(ctx context.Context) (string, error) {
	return nextNumber(ctx, r.db, &entity.PurchaseInvoice{}, "PI")
}
