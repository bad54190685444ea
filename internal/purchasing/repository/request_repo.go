package repository

import (
	"context"
	"errors"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
	"gorm.io/gorm"
)

// RequestRepository handles PurchaseRequest persistence.
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// FindAll lists purchase requests, most recently updated first.
func (r *RequestRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseRequest, int64, error) {
	var items []entity.PurchaseRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseRequest{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if division := filters["division"]; division != "" {
		query = query.Where("division = ?", division)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("number ILIKE ? OR pic ILIKE ? OR purpose ILIKE ?",
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

// FindByID loads one purchase request with its ordered items.
func (r *RequestRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	var pr entity.PurchaseRequest
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&pr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pr, nil
}

func (r *RequestRepository) Create(ctx context.Context, pr *entity.PurchaseRequest) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

// Update replaces the request and its full item set in one transaction.
func (r *RequestRepository) Update(ctx context.Context, pr *entity.PurchaseRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", pr.ID).Delete(&entity.PRItem{}).Error; err != nil {
			return err
		}
		return tx.Save(pr).Error
	})
}

// UpdateStatus writes status and audit fields without touching items.
func (r *RequestRepository) UpdateStatus(ctx context.Context, pr *entity.PurchaseRequest) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseRequest{}).
		Where("id = ?", pr.ID).
		Updates(map[string]interface{}{
			"status":         pr.Status,
			"reviewer":       pr.Reviewer,
			"approver":       pr.Approver,
			"reviewer_notes": pr.ReviewerNotes,
			"updated_at":     pr.UpdatedAt,
		}).Error
}

// UpdateItem writes one item row, used by the photo upload.
func (r *RequestRepository) UpdateItem(ctx context.Context, item *entity.PRItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes the request and its items.
func (r *RequestRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&entity.PRItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entity.PurchaseRequest{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GenerateNumber issues the next PR-YYYYMMDD-NNNN for today.
func (r *RequestRepository) GenerateNumber(ctx context.Context) (string, error) {
	return nextNumber(ctx, r.db, &entity.PurchaseRequest{}, "PR")
}
