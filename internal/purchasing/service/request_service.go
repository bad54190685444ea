package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/lifecycle"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/repository"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/snapshot"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/storage"
)

// RequestService drives the PurchaseRequest lifecycle. Every mutation
// is mirrored into the redis snapshot best-effort; the database stays
// the source of truth.
type RequestService struct {
	repo     *repository.RequestRepository
	snapshot *snapshot.Store
	photos   *storage.PhotoStore
	logger   *zap.Logger
}

func NewRequestService(repo *repository.RequestRepository, snap *snapshot.Store, photos *storage.PhotoStore, logger *zap.Logger) *RequestService {
	return &RequestService{repo: repo, snapshot: snap, photos: photos, logger: logger}
}

func (s *RequestService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseRequest, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *RequestService) Get(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	return s.repo.FindByID(ctx, id)
}

// RequestItemInput is one line of a create or update payload.
type RequestItemInput struct {
	MonthYearForUse string  `json:"month_year_for_use"`
	Name            string  `json:"name" binding:"required"`
	Brand           string  `json:"brand"`
	Specification   string  `json:"specification"`
	Quantity        float64 `json:"quantity" binding:"required"`
	Unit            string  `json:"unit"`
	Price           float64 `json:"price"`
	TaxCode         string  `json:"tax_code"`
	ItemPhoto       string  `json:"item_photo"`
	PurchaseLink    string  `json:"purchase_link"`
	UserPIC         string  `json:"user_pic"`
	Location        string  `json:"location"`
	Notes           string  `json:"notes"`
}

// CreateRequestRequest is the payload for opening a new request.
type CreateRequestRequest struct {
	Division          string             `json:"division" binding:"required"`
	PIC               string             `json:"pic"`
	Purpose           string             `json:"purpose"`
	DateOfUse         string             `json:"date_of_use"`
	NeededDate        string             `json:"needed_date"`
	ShippingAddress   string             `json:"shipping_address"`
	EarlyPaymentTerms string             `json:"early_payment_terms"`
	Messages          string             `json:"messages"`
	Items             []RequestItemInput `json:"items"`
}

// Create opens a new draft purchase request.
func (s *RequestService) Create(ctx context.Context, userID string, req *CreateRequestRequest) (*entity.PurchaseRequest, error) {
	number, err := s.repo.GenerateNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate request number: %w", err)
	}

	pr := &entity.PurchaseRequest{
		ID:                newID(),
		Number:            number,
		Status:            entity.PRStatusDraft,
		Division:          req.Division,
		PIC:               req.PIC,
		Purpose:           req.Purpose,
		DateRequest:       time.Now().Format(dateLayout),
		NeededDate:        req.NeededDate,
		DateOfUse:         req.DateOfUse,
		ShippingAddress:   req.ShippingAddress,
		EarlyPaymentTerms: req.EarlyPaymentTerms,
		Messages:          req.Messages,
		CreatedBy:         userID,
	}
	pr.Items = buildRequestItems(pr.ID, req.Items)
	applyRequestTotals(pr)

	if err := s.repo.Create(ctx, pr); err != nil {
		return nil, err
	}
	s.mirror(ctx, pr)
	return pr, nil
}

// UpdateRequestRequest replaces the editable header fields and the full
// item list of a draft.
type UpdateRequestRequest struct {
	Division          *string            `json:"division"`
	PIC               *string            `json:"pic"`
	Purpose           *string            `json:"purpose"`
	DateOfUse         *string            `json:"date_of_use"`
	NeededDate        *string            `json:"needed_date"`
	ShippingAddress   *string            `json:"shipping_address"`
	EarlyPaymentTerms *string            `json:"early_payment_terms"`
	Messages          *string            `json:"messages"`
	Items             []RequestItemInput `json:"items"`
}

// Update edits a draft. Totals are rederived wholesale so the stored
// figures can never drift from the items.
func (s *RequestService) Update(ctx context.Context, id string, req *UpdateRequestRequest) (*entity.PurchaseRequest, error) {
	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanEditRequest(pr.Status) {
		return nil, fmt.Errorf("%w: purchase request %s is not editable in status %s", lifecycle.ErrValidation, pr.Number, pr.Status)
	}

	if req.Division != nil {
		pr.Division = *req.Division
	}
	if req.PIC != nil {
		pr.PIC = *req.PIC
	}
	if req.Purpose != nil {
		pr.Purpose = *req.Purpose
	}
	if req.DateOfUse != nil {
		pr.DateOfUse = *req.DateOfUse
	}
	if req.NeededDate != nil {
		pr.NeededDate = *req.NeededDate
	}
	if req.ShippingAddress != nil {
		pr.ShippingAddress = *req.ShippingAddress
	}
	if req.EarlyPaymentTerms != nil {
		pr.EarlyPaymentTerms = *req.EarlyPaymentTerms
	}
	if req.Messages != nil {
		pr.Messages = *req.Messages
	}
	if req.Items != nil {
		pr.Items = buildRequestItems(pr.ID, req.Items)
	}
	applyRequestTotals(pr)

	if err := s.repo.Update(ctx, pr); err != nil {
		return nil, err
	}
	s.mirror(ctx, pr)
	return pr, nil
}

// Delete removes the request from the database and the snapshot.
func (s *RequestService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.snapshot.Remove(ctx, id); err != nil {
		s.logger.Warn("snapshot remove failed", zap.String("request_id", id), zap.Error(err))
	}
	return nil
}

// Submit moves a draft (or a rejected request being resubmitted) to
// submitted after the mandatory-field check.
func (s *RequestService) Submit(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckRequest(pr.Status, entity.PRStatusSubmitted); err != nil {
		return nil, err
	}
	if err := lifecycle.ValidateSubmit(pr); err != nil {
		return nil, err
	}
	return s.transition(ctx, pr, entity.PRStatusSubmitted)
}

// Review marks a submitted request as reviewed and records the reviewer.
func (s *RequestService) Review(ctx context.Context, id, actor, notes string) (*entity.PurchaseRequest, error) {
	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckRequest(pr.Status, entity.PRStatusReviewed); err != nil {
		return nil, err
	}
	pr.Reviewer = &actor
	if notes != "" {
		pr.ReviewerNotes = notes
	}
	return s.transition(ctx, pr, entity.PRStatusReviewed)
}

// Approve marks a reviewed request as approved and records the approver.
func (s *RequestService) Approve(ctx context.Context, id, actor string) (*entity.PurchaseRequest, error) {
	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckRequest(pr.Status, entity.PRStatusApproved); err != nil {
		return nil, err
	}
	pr.Approver = &actor
	return s.transition(ctx, pr, entity.PRStatusApproved)
}

// Reject refuses a submitted or reviewed request. The acting reviewer
// or approver is recorded along with the stated reason.
func (s *RequestService) Reject(ctx context.Context, id, actor, notes string) (*entity.PurchaseRequest, error) {
	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckRequest(pr.Status, entity.PRStatusRejected); err != nil {
		return nil, err
	}
	switch pr.Status {
	case entity.PRStatusSubmitted:
		pr.Reviewer = &actor
	case entity.PRStatusReviewed:
		pr.Approver = &actor
	}
	if notes != "" {
		pr.ReviewerNotes = notes
	}
	return s.transition(ctx, pr, entity.PRStatusRejected)
}

// Resubmit sends a rejected request back into review.
func (s *RequestService) Resubmit(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr.Status != entity.PRStatusRejected {
		return nil, fmt.Errorf("%w: purchase request %s -> %s", lifecycle.ErrInvalidTransition, pr.Status, entity.PRStatusSubmitted)
	}
	if err := lifecycle.ValidateSubmit(pr); err != nil {
		return nil, err
	}
	return s.transition(ctx, pr, entity.PRStatusSubmitted)
}

// UploadItemPhoto stores a photo for one request line and records its
// object path. Draft only, like every other item edit.
func (s *RequestService) UploadItemPhoto(ctx context.Context, id, itemID string, reader io.Reader, fileName string, fileSize int64, contentType string) (*entity.PurchaseRequest, error) {
	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanEditRequest(pr.Status) {
		return nil, fmt.Errorf("%w: purchase request %s is not editable in status %s", lifecycle.ErrValidation, pr.Number, pr.Status)
	}

	var target *entity.PRItem
	for i := range pr.Items {
		if pr.Items[i].ID == itemID {
			target = &pr.Items[i]
			break
		}
	}
	if target == nil {
		return nil, repository.ErrNotFound
	}

	objectName, err := s.photos.Upload(ctx, reader, fileName, fileSize, contentType)
	if err != nil {
		return nil, err
	}
	target.ItemPhoto = objectName
	if err := s.repo.UpdateItem(ctx, target); err != nil {
		return nil, err
	}
	s.mirror(ctx, pr)
	return pr, nil
}

func (s *RequestService) transition(ctx context.Context, pr *entity.PurchaseRequest, status string) (*entity.PurchaseRequest, error) {
	pr.Status = status
	pr.UpdatedAt = time.Now()
	if err := s.repo.UpdateStatus(ctx, pr); err != nil {
		return nil, err
	}
	s.mirror(ctx, pr)
	return pr, nil
}

// mirror pushes the current record into the redis snapshot. Failures
// are logged and swallowed; the snapshot is a cache, not the truth.
func (s *RequestService) mirror(ctx context.Context, pr *entity.PurchaseRequest) {
	if err := s.snapshot.Save(ctx, pr); err != nil {
		s.logger.Warn("snapshot save failed",
			zap.String("request_id", pr.ID),
			zap.String("number", pr.Number),
			zap.Error(err))
	}
}

func buildRequestItems(requestID string, inputs []RequestItemInput) []entity.PRItem {
	items := make([]entity.PRItem, 0, len(inputs))
	for i, in := range inputs {
		unit := in.Unit
		if unit == "" {
			unit = "pcs"
		}
		taxCode := in.TaxCode
		if taxCode == "" {
			taxCode = entity.TaxCodePPN11
		}
		items = append(items, entity.PRItem{
			ID:              newID(),
			RequestID:       requestID,
			MonthYearForUse: in.MonthYearForUse,
			Name:            in.Name,
			Brand:           in.Brand,
			Specification:   in.Specification,
			Quantity:        in.Quantity,
			Unit:            unit,
			Price:           in.Price,
			TaxCode:         taxCode,
			ItemPhoto:       in.ItemPhoto,
			PurchaseLink:    in.PurchaseLink,
			UserPIC:         in.UserPIC,
			Location:        in.Location,
			Notes:           in.Notes,
			SortOrder:       i + 1,
		})
	}
	return items
}
