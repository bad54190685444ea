package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/lifecycle"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/repository"
)

// InvoiceService drives the PurchaseInvoice lifecycle, including
// creation from processed purchase orders.
type InvoiceService struct {
	repo          *repository.InvoiceRepository
	orderRepo     *repository.OrderRepository
	inventoryRepo *repository.InventoryRepository
	logger        *zap.Logger
}

func NewInvoiceService(repo *repository.InvoiceRepository, orderRepo *repository.OrderRepository, inventoryRepo *repository.InventoryRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, orderRepo: orderRepo, inventoryRepo: inventoryRepo, logger: logger}
}

func (s *InvoiceService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseInvoice, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateFromOrder spawns a draft invoice from a processed order. Item
// numbers resolve against the inventory master by exact item name; a
// name without an inventory record falls back to "N/A". The source
// order is left unchanged.
func (s *InvoiceService) CreateFromOrder(ctx context.Context, orderID, userID string) (*entity.PurchaseInvoice, error) {
	po, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.POStatusProcessed {
		return nil, fmt.Errorf("%w: purchase order %s must be processed before invoicing, current status %s", lifecycle.ErrValidation, po.Number, po.Status)
	}

	number, err := s.repo.GenerateNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate invoice number: %w", err)
	}

	lookup := func(name string) (string, bool) {
		item, err := s.inventoryRepo.FindByName(ctx, name)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				s.logger.Warn("inventory lookup failed", zap.String("item_name", name), zap.Error(err))
			}
			return "", false
		}
		return item.ItemNumber, true
	}

	pi := BuildInvoiceFromOrder(po, number, time.Now(), lookup)
	pi.CreatedBy = userID
	if err := s.repo.Create(ctx, pi); err != nil {
		return nil, err
	}
	s.logger.Info("purchase invoice created",
		zap.String("number", pi.Number),
		zap.String("source_order", pi.SourceOrder))
	return pi, nil
}

// InvoiceItemInput is one line of an invoice update payload.
type InvoiceItemInput struct {
	ItemNumber  string  `json:"item_number"`
	Qty         float64 `json:"qty" binding:"required"`
	OrderQty    float64 `json:"order_qty"`
	BackOrder   float64 `json:"back_order"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	TaxCode     string  `json:"tax_code"`
	Account     string  `json:"account"`
	Notes       string  `json:"notes"`
}

// UpdateInvoiceRequest edits a draft invoice.
type UpdateInvoiceRequest struct {
	PaymentMethod     *string            `json:"payment_method"`
	LocationInventory *string            `json:"location_inventory"`
	InvoiceDate       *string            `json:"invoice_date"`
	ShippingDate      *string            `json:"shipping_date"`
	ShippingAddress   *string            `json:"shipping_address"`
	Freight           *float64           `json:"freight"`
	Notes             *string            `json:"notes"`
	Items             []InvoiceItemInput `json:"items"`
}

func (s *InvoiceService) Update(ctx context.Context, id string, req *UpdateInvoiceRequest) (*entity.PurchaseInvoice, error) {
	pi, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanEditInvoice(pi.Status) {
		return nil, fmt.Errorf("%w: purchase invoice %s is not editable in status %s", lifecycle.ErrValidation, pi.Number, pi.Status)
	}

	if req.PaymentMethod != nil {
		pi.PaymentMethod = *req.PaymentMethod
	}
	if req.LocationInventory != nil {
		pi.LocationInventory = *req.LocationInventory
	}
	if req.InvoiceDate != nil {
		pi.InvoiceDate = *req.InvoiceDate
	}
	if req.ShippingDate != nil {
		pi.ShippingDate = *req.ShippingDate
	}
	if req.ShippingAddress != nil {
		pi.ShippingAddress = *req.ShippingAddress
	}
	if req.Freight != nil {
		pi.Freight = *req.Freight
	}
	if req.Notes != nil {
		pi.Notes = *req.Notes
	}
	if req.Items != nil {
		pi.Items = buildInvoiceItems(pi.ID, req.Items)
	}
	applyInvoiceTotals(pi)

	if err := s.repo.Update(ctx, pi); err != nil {
		return nil, err
	}
	return pi, nil
}

// Process submits a draft invoice.
func (s *InvoiceService) Process(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return s.changeStatus(ctx, id, entity.PIStatusSubmitted)
}

// Pay settles a submitted or overdue invoice and stamps today as the
// payment date.
func (s *InvoiceService) Pay(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	pi, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckInvoice(pi.Status, entity.PIStatusPaid); err != nil {
		return nil, err
	}
	paymentDate := time.Now().Format(dateLayout)
	pi.PaymentDate = &paymentDate
	return s.transition(ctx, pi, entity.PIStatusPaid)
}

// MarkOverdue flags a submitted invoice past its due date.
func (s *InvoiceService) MarkOverdue(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return s.changeStatus(ctx, id, entity.PIStatusOverdue)
}

// Cancel is terminal and allowed from draft, submitted or overdue.
func (s *InvoiceService) Cancel(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return s.changeStatus(ctx, id, entity.PIStatusCancelled)
}

func (s *InvoiceService) changeStatus(ctx context.Context, id, status string) (*entity.PurchaseInvoice, error) {
	pi, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckInvoice(pi.Status, status); err != nil {
		return nil, err
	}
	return s.transition(ctx, pi, status)
}

func (s *InvoiceService) transition(ctx context.Context, pi *entity.PurchaseInvoice, status string) (*entity.PurchaseInvoice, error) {
	pi.Status = status
	pi.UpdatedAt = time.Now()
	if err := s.repo.UpdateStatus(ctx, pi); err != nil {
		return nil, err
	}
	return pi, nil
}

func buildInvoiceItems(invoiceID string, inputs []InvoiceItemInput) []entity.PIItem {
	items := make([]entity.PIItem, 0, len(inputs))
	for i, in := range inputs {
		unit := in.Unit
		if unit == "" {
			unit = "pcs"
		}
		taxCode := in.TaxCode
		if taxCode == "" {
			taxCode = entity.TaxCodePPN11
		}
		itemNumber := in.ItemNumber
		if itemNumber == "" {
			itemNumber = entity.ItemNumberNA
		}
		items = append(items, entity.PIItem{
			ID:          newID(),
			InvoiceID:   invoiceID,
			ItemNumber:  itemNumber,
			Qty:         in.Qty,
			OrderQty:    in.OrderQty,
			BackOrder:   in.BackOrder,
			Unit:        unit,
			Description: in.Description,
			Price:       in.Price,
			Discount:    in.Discount,
			TaxCode:     taxCode,
			Account:     in.Account,
			Notes:       in.Notes,
			SortOrder:   i + 1,
		})
	}
	return items
}
