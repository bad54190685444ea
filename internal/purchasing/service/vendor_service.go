package service

import (
	"context"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/repository"
)

// VendorService manages the vendor master.
type VendorService struct {
	repo *repository.VendorRepository
}

func NewVendorService(repo *repository.VendorRepository) *VendorService {
	return &VendorService{repo: repo}
}

func (s *VendorService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Vendor, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *VendorService) Get(ctx context.Context, id string) (*entity.Vendor, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateVendorRequest is the payload for registering a vendor.
type CreateVendorRequest struct {
	Name          string `json:"name" binding:"required"`
	PaymentTerms  string `json:"payment_terms"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

func (s *VendorService) Create(ctx context.Context, req *CreateVendorRequest) (*entity.Vendor, error) {
	v := &entity.Vendor{
		ID:            newID(),
		Name:          req.Name,
		PaymentTerms:  req.PaymentTerms,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Status:        entity.VendorStatusActive,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateVendorRequest applies partial vendor edits.
type UpdateVendorRequest struct {
	Name          *string `json:"name"`
	PaymentTerms  *string `json:"payment_terms"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Status        *string `json:"status"`
}

func (s *VendorService) Update(ctx context.Context, id string, req *UpdateVendorRequest) (*entity.Vendor, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.PaymentTerms != nil {
		v.PaymentTerms = *req.PaymentTerms
	}
	if req.Address != nil {
		v.Address = *req.Address
	}
	if req.ContactPerson != nil {
		v.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		v.Email = *req.Email
	}
	if req.Phone != nil {
		v.Phone = *req.Phone
	}
	if req.Status != nil {
		v.Status = *req.Status
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}
