package service

import (
	"context"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/repository"
)

// InventoryService manages the item master. It is informational for
// purchasing; invoice creation consults it for item number lookup.
type InventoryService struct {
	repo *repository.InventoryRepository
}

func NewInventoryService(repo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.InventoryItem, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *InventoryService) Get(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return s.repo.FindByID(ctx, id)
}

// ItemLocationInput is one per-location quantity entry.
type ItemLocationInput struct {
	Location    string  `json:"location" binding:"required"`
	OnHandQty   float64 `json:"on_hand_qty"`
	OnHandValue float64 `json:"on_hand_value"`
}

// ItemPriceInput is one price list entry.
type ItemPriceInput struct {
	ListName string  `json:"list_name" binding:"required"`
	Price    float64 `json:"price"`
}

// CreateItemRequest is the payload for registering an inventory item.
type CreateItemRequest struct {
	ItemNumber        string              `json:"item_number" binding:"required"`
	Name              string              `json:"name" binding:"required"`
	Type              string              `json:"type"`
	StockingUOM       string              `json:"stocking_uom"`
	SellingUOM        string              `json:"selling_uom"`
	SellingConversion string              `json:"selling_conversion"`
	BuyingUOM         string              `json:"buying_uom"`
	BuyingConversion  string              `json:"buying_conversion"`
	PreferredVendorID *string             `json:"preferred_vendor_id"`
	TaxablePPN11      *bool               `json:"taxable_ppn11"`
	ExemptPPN         bool                `json:"exempt_ppn"`
	Description       string              `json:"description"`
	PictureURL        string              `json:"picture_url"`
	ThumbnailURL      string              `json:"thumbnail_url"`
	Locations         []ItemLocationInput `json:"locations"`
	Prices            []ItemPriceInput    `json:"prices"`
}

func (s *InventoryService) Create(ctx context.Context, req *CreateItemRequest) (*entity.InventoryItem, error) {
	itemType := req.Type
	if itemType == "" {
		itemType = entity.ItemTypeInventory
	}
	stockingUOM := req.StockingUOM
	if stockingUOM == "" {
		stockingUOM = "pcs"
	}
	taxable := true
	if req.TaxablePPN11 != nil {
		taxable = *req.TaxablePPN11
	}

	item := &entity.InventoryItem{
		ID:                newID(),
		ItemNumber:        req.ItemNumber,
		Name:              req.Name,
		Type:              itemType,
		Status:            entity.ItemStatusActive,
		StockingUOM:       stockingUOM,
		SellingUOM:        req.SellingUOM,
		SellingConversion: req.SellingConversion,
		BuyingUOM:         req.BuyingUOM,
		BuyingConversion:  req.BuyingConversion,
		PreferredVendorID: req.PreferredVendorID,
		TaxablePPN11:      taxable,
		ExemptPPN:         req.ExemptPPN,
		Description:       req.Description,
		PictureURL:        req.PictureURL,
		ThumbnailURL:      req.ThumbnailURL,
	}
	item.Locations = buildItemLocations(item.ID, req.Locations)
	item.Prices = buildItemPrices(item.ID, req.Prices)

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemRequest applies partial item edits; location and price
// lists replace wholesale when present.
type UpdateItemRequest struct {
	Name              *string             `json:"name"`
	Type              *string             `json:"type"`
	Status            *string             `json:"status"`
	StockingUOM       *string             `json:"stocking_uom"`
	SellingUOM        *string             `json:"selling_uom"`
	SellingConversion *string             `json:"selling_conversion"`
	BuyingUOM         *string             `json:"buying_uom"`
	BuyingConversion  *string             `json:"buying_conversion"`
	PreferredVendorID *string             `json:"preferred_vendor_id"`
	TaxablePPN11      *bool               `json:"taxable_ppn11"`
	ExemptPPN         *bool               `json:"exempt_ppn"`
	Description       *string             `json:"description"`
	PictureURL        *string             `json:"picture_url"`
	ThumbnailURL      *string             `json:"thumbnail_url"`
	Locations         []ItemLocationInput `json:"locations"`
	Prices            []ItemPriceInput    `json:"prices"`
}

func (s *InventoryService) Update(ctx context.Context, id string, req *UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.StockingUOM != nil {
		item.StockingUOM = *req.StockingUOM
	}
	if req.SellingUOM != nil {
		item.SellingUOM = *req.SellingUOM
	}
	if req.SellingConversion != nil {
		item.SellingConversion = *req.SellingConversion
	}
	if req.BuyingUOM != nil {
		item.BuyingUOM = *req.BuyingUOM
	}
	if req.BuyingConversion != nil {
		item.BuyingConversion = *req.BuyingConversion
	}
	if req.PreferredVendorID != nil {
		item.PreferredVendorID = req.PreferredVendorID
	}
	if req.TaxablePPN11 != nil {
		item.TaxablePPN11 = *req.TaxablePPN11
	}
	if req.ExemptPPN != nil {
		item.ExemptPPN = *req.ExemptPPN
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.PictureURL != nil {
		item.PictureURL = *req.PictureURL
	}
	if req.ThumbnailURL != nil {
		item.ThumbnailURL = *req.ThumbnailURL
	}
	if req.Locations != nil {
		item.Locations = buildItemLocations(item.ID, req.Locations)
	}
	if req.Prices != nil {
		item.Prices = buildItemPrices(item.ID, req.Prices)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func buildItemLocations(itemID string, inputs []ItemLocationInput) []entity.ItemLocation {
	locations := make([]entity.ItemLocation, 0, len(inputs))
	for _, in := range inputs {
		locations = append(locations, entity.ItemLocation{
			ID:          newID(),
			ItemID:      itemID,
			Location:    in.Location,
			OnHandQty:   in.OnHandQty,
			OnHandValue: in.OnHandValue,
		})
	}
	return locations
}

func buildItemPrices(itemID string, inputs []ItemPriceInput) []entity.ItemPrice {
	prices := make([]entity.ItemPrice, 0, len(inputs))
	for _, in := range inputs {
		prices = append(prices, entity.ItemPrice{
			ID:       newID(),
			ItemID:   itemID,
			ListName: in.ListName,
			Price:    in.Price,
		})
	}
	return prices
}
