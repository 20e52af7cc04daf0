package partner

import (
	"time"

	"github.com/schoolkart/backend/internal/domain/partner"
)

// BankDetailsPayload mirrors partner.BankDetails on the wire
type BankDetailsPayload struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	BankName      string `json:"bankName"`
}

func (b BankDetailsPayload) toDomain() partner.BankDetails {
	return partner.BankDetails{
		AccountName:   b.AccountName,
		AccountNumber: b.AccountNumber,
		IFSC:          b.IFSC,
		BankName:      b.BankName,
	}
}

// CreateSupplierRequest registers a supplier
type CreateSupplierRequest struct {
	Name          string             `json:"name" binding:"required"`
	ContactPerson string             `json:"contactPerson"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email" binding:"omitempty,email"`
	Address       string             `json:"address"`
	GSTIN         string             `json:"gstin" binding:"omitempty,gstin"`
	BankDetails   BankDetailsPayload `json:"bankDetails"`
}

// UpdateSupplierRequest updates a supplier
type UpdateSupplierRequest struct {
	Name          string             `json:"name" binding:"required"`
	ContactPerson string             `json:"contactPerson"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email" binding:"omitempty,email"`
	Address       string             `json:"address"`
	GSTIN         string             `json:"gstin" binding:"omitempty,gstin"`
	BankDetails   BankDetailsPayload `json:"bankDetails"`
	IsActive      *bool              `json:"isActive"`
}

// SupplierResponse is the public view of a supplier
type SupplierResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	ContactPerson string             `json:"contactPerson"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	Address       string             `json:"address"`
	GSTIN         string             `json:"gstin"`
	BankDetails   BankDetailsPayload `json:"bankDetails"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// ToSupplierResponse maps a supplier to its public view
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		GSTIN:         s.GSTIN,
		BankDetails: BankDetailsPayload{
			AccountName:   s.BankDetails.AccountName,
			AccountNumber: s.BankDetails.AccountNumber,
			IFSC:          s.BankDetails.IFSC,
			BankName:      s.BankDetails.BankName,
		},
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}
