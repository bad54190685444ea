package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/lifecycle"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/repository"
)

// OrderService drives the PurchaseOrder lifecycle, including creation
// from approved purchase requests.
type OrderService struct {
	repo        *repository.OrderRepository
	requestRepo *repository.RequestRepository
	vendorRepo  *repository.VendorRepository
	logger      *zap.Logger
}

func NewOrderService(repo *repository.OrderRepository, requestRepo *repository.RequestRepository, vendorRepo *repository.VendorRepository, logger *zap.Logger) *OrderService {
	return &OrderService{repo: repo, requestRepo: requestRepo, vendorRepo: vendorRepo, logger: logger}
}

func (s *OrderService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseOrder, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *OrderService) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateFromRequest spawns a draft order from an approved request. One
// request may spawn any number of orders; the request itself is left
// unchanged.
func (s *OrderService) CreateFromRequest(ctx context.Context, requestID, userID string) (*entity.PurchaseOrder, error) {
	pr, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if pr.Status != entity.PRStatusApproved {
		return nil, fmt.Errorf("%w: purchase request %s must be approved before ordering, current status %s", lifecycle.ErrValidation, pr.Number, pr.Status)
	}

	number, err := s.repo.GenerateNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}

	po := BuildOrderFromRequest(pr, number, time.Now())
	po.CreatedBy = userID
	if err := s.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	s.logger.Info("purchase order created",
		zap.String("number", po.Number),
		zap.String("source_request", po.SourceRequest))
	return po, nil
}

// OrderItemInput is one line of an order update payload.
type OrderItemInput struct {
	Name        string  `json:"name" binding:"required"`
	OrderQty    float64 `json:"order_qty" binding:"required"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	TaxCode     string  `json:"tax_code"`
	Account     string  `json:"account"`
	Notes       string  `json:"notes"`
}

// UpdateOrderRequest edits a draft order. Choosing a vendor copies its
// default payment terms unless a payment method arrives in the same
// payload.
type UpdateOrderRequest struct {
	VendorID          *string          `json:"vendor_id"`
	PaymentMethod     *string          `json:"payment_method"`
	LocationInventory *string          `json:"location_inventory"`
	ShippingDate      *string          `json:"shipping_date"`
	ShippingAddress   *string          `json:"shipping_address"`
	Freight           *float64         `json:"freight"`
	EarlyPaymentTerms *string          `json:"early_payment_terms"`
	Messages          *string          `json:"messages"`
	Items             []OrderItemInput `json:"items"`
}

func (s *OrderService) Update(ctx context.Context, id string, req *UpdateOrderRequest) (*entity.PurchaseOrder, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanEditOrder(po.Status) {
		return nil, fmt.Errorf("%w: purchase order %s is not editable in status %s", lifecycle.ErrValidation, po.Number, po.Status)
	}

	if req.VendorID != nil {
		vendor, err := s.vendorRepo.FindByID(ctx, *req.VendorID)
		if err != nil {
			return nil, fmt.Errorf("resolve vendor: %w", err)
		}
		po.VendorID = &vendor.ID
		po.Vendor = vendor.Name
		if req.PaymentMethod == nil {
			po.PaymentMethod = vendor.PaymentTerms
		}
	}
	if req.PaymentMethod != nil {
		po.PaymentMethod = *req.PaymentMethod
	}
	if req.LocationInventory != nil {
		po.LocationInventory = *req.LocationInventory
	}
	if req.ShippingDate != nil {
		po.ShippingDate = *req.ShippingDate
	}
	if req.ShippingAddress != nil {
		po.ShippingAddress = *req.ShippingAddress
	}
	if req.Freight != nil {
		po.Freight = *req.Freight
	}
	if req.EarlyPaymentTerms != nil {
		po.EarlyPaymentTerms = *req.EarlyPaymentTerms
	}
	if req.Messages != nil {
		po.Messages = *req.Messages
	}
	if req.Items != nil {
		po.Items = buildOrderItems(po.ID, req.Items)
	}
	applyOrderTotals(po)

	if err := s.repo.Update(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// Process locks the order for invoicing. Vendor and payment method
// must be set by now.
func (s *OrderService) Process(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckOrder(po.Status, entity.POStatusProcessed); err != nil {
		return nil, err
	}
	if err := lifecycle.ValidateProcess(po); err != nil {
		return nil, err
	}
	return s.transition(ctx, po, entity.POStatusProcessed)
}

// Cancel is allowed from draft or processed and is terminal.
func (s *OrderService) Cancel(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckOrder(po.Status, entity.POStatusCancelled); err != nil {
		return nil, err
	}
	return s.transition(ctx, po, entity.POStatusCancelled)
}

func (s *OrderService) transition(ctx context.Context, po *entity.PurchaseOrder, status string) (*entity.PurchaseOrder, error) {
	po.Status = status
	po.UpdatedAt = time.Now()
	if err := s.repo.UpdateStatus(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

func buildOrderItems(orderID string, inputs []OrderItemInput) []entity.POItem {
	items := make([]entity.POItem, 0, len(inputs))
	for i, in := range inputs {
		unit := in.Unit
		if unit == "" {
			unit = "pcs"
		}
		taxCode := in.TaxCode
		if taxCode == "" {
			taxCode = entity.TaxCodePPN11
		}
		items = append(items, entity.POItem{
			ID:          newID(),
			OrderID:     orderID,
			Name:        in.Name,
			OrderQty:    in.OrderQty,
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
