package repository

import (
	"context"
	"errors"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
	"gorm.io/gorm"
)

// InventoryRepository handles the inventory item master.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if itemType := filters["type"]; itemType != "" {
		query = query.Where("type = ?", itemType)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("name ILIKE ? OR item_number ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Locations").
		Preload("Prices").
		Order("item_number ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).
		Preload("Locations").
		Preload("Prices").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByName resolves an item by exact name, used for invoice item
// number lookup. Missing items are reported via ErrNotFound.
func (r *InventoryRepository) FindByName(ctx context.Context, name string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update replaces the item and its location and price lists.
func (r *InventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", item.ID).Delete(&entity.ItemLocation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&entity.ItemPrice{}).Error; err != nil {
			return err
		}
		return tx.Save(item).Error
	})
}
