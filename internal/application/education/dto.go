package education

import (
	"time"

	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/reporting"
	"github.com/shopspring/decimal"
)

// AddressPayload mirrors education.Address on the wire
type AddressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// ContactPayload mirrors education.Contact on the wire
type ContactPayload struct {
	Phone string `json:"phone"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (a AddressPayload) toDomain() education.Address {
	return education.Address{Street: a.Street, City: a.City, State: a.State, Pincode: a.Pincode}
}

func (c ContactPayload) toDomain() education.Contact {
	return education.Contact{Phone: c.Phone, Email: c.Email}
}

// CreateSchoolRequest creates a school
type CreateSchoolRequest struct {
	Name           string          `json:"name" binding:"required"`
	Code           string          `json:"code" binding:"required"`
	Address        AddressPayload  `json:"address"`
	Contact        ContactPayload  `json:"contact"`
	PrincipalName  string          `json:"principalName"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
}

// UpdateSchoolRequest updates a school's details
type UpdateSchoolRequest struct {
	Name           string           `json:"name" binding:"required"`
	Address        AddressPayload   `json:"address"`
	Contact        ContactPayload   `json:"contact"`
	PrincipalName  string           `json:"principalName"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
	IsActive       *bool            `json:"isActive"`
}

// SchoolResponse is the public view of a school
type SchoolResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	Address        AddressPayload  `json:"address"`
	Contact        ContactPayload  `json:"contact"`
	PrincipalName  string          `json:"principalName"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToSchoolResponse maps a school to its public view
func ToSchoolResponse(s *education.School) SchoolResponse {
	return SchoolResponse{
		ID:   s.ID.String(),
		Name: s.Name,
		Code: s.Code,
		Address: AddressPayload{
			Street: s.Address.Street, City: s.Address.City,
			State: s.Address.State, Pincode: s.Address.Pincode,
		},
		Contact:        ContactPayload{Phone: s.Contact.Phone, Email: s.Contact.Email},
		PrincipalName:  s.PrincipalName,
		CommissionRate: s.CommissionRate,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}

// ClassBreakdownResponse is one class's share of the school's sales
type ClassBreakdownResponse struct {
	Class        string          `json:"class"`
	StudentCount int64           `json:"studentCount"`
	InvoiceCount int64           `json:"invoiceCount"`
	TotalSales   decimal.Decimal `json:"totalSales"`
}

// SettlementResponse is one settled commission payout
type SettlementResponse struct {
	CommissionID     string          `json:"commissionId"`
	InvoiceID        string          `json:"invoiceId"`
	Amount           decimal.Decimal `json:"amount"`
	SettlementDate   time.Time       `json:"settlementDate"`
	PaymentReference string          `json:"paymentReference"`
}

// SchoolDashboardResponse is the per-school detail snapshot
type SchoolDashboardResponse struct {
	School            SchoolResponse           `json:"school"`
	StudentCount      int64                    `json:"studentCount"`
	InvoiceCount      int64                    `json:"invoiceCount"`
	TotalSales        decimal.Decimal          `json:"totalSales"`
	CommissionPending decimal.Decimal          `json:"commissionPending"`
	CommissionSettled decimal.Decimal          `json:"commissionSettled"`
	ClassBreakdown    []ClassBreakdownResponse `json:"classBreakdown"`
	RecentSettlements []SettlementResponse     `json:"recentSettlements"`
}

// ToSchoolDashboardResponse merges a school and its aggregates
func ToSchoolDashboardResponse(s *education.School, d *reporting.SchoolDashboard) SchoolDashboardResponse {
	classes := make([]ClassBreakdownResponse, len(d.ClassBreakdown))
	for i, row := range d.ClassBreakdown {
		classes[i] = ClassBreakdownResponse{
			Class:        row.Class,
			StudentCount: row.StudentCount,
			InvoiceCount: row.InvoiceCount,
			TotalSales:   row.TotalSales,
		}
	}
	settlements := make([]SettlementResponse, len(d.RecentSettlements))
	for i, row := range d.RecentSettlements {
		settlements[i] = SettlementResponse{
			CommissionID:     row.CommissionID.String(),
			InvoiceID:        row.InvoiceID.String(),
			Amount:           row.Amount,
			SettlementDate:   row.SettlementDate,
			PaymentReference: row.PaymentReference,
		}
	}
	return SchoolDashboardResponse{
		School:            ToSchoolResponse(s),
		StudentCount:      d.StudentCount,
		InvoiceCount:      d.InvoiceCount,
		TotalSales:        d.TotalSales,
		CommissionPending: d.CommissionPending,
		CommissionSettled: d.CommissionSettled,
		ClassBreakdown:    classes,
		RecentSettlements: settlements,
	}
}

// CreateStudentRequest enrolls a student
type CreateStudentRequest struct {
	RollNumber    string         `json:"rollNumber" binding:"required"`
	Name          string         `json:"name" binding:"required"`
	SchoolID      string         `json:"schoolId" binding:"required,uuid"`
	Class         string         `json:"class" binding:"required"`
	Section       string         `json:"section"`
	FatherName    string         `json:"fatherName"`
	MotherName    string         `json:"motherName"`
	Contact       ContactPayload `json:"contact"`
	Address       AddressPayload `json:"address"`
	DateOfBirth   *time.Time     `json:"dateOfBirth"`
	AdmissionDate *time.Time     `json:"admissionDate"`
}

// UpdateStudentRequest updates a student's details
type UpdateStudentRequest struct {
	Name       string         `json:"name" binding:"required"`
	SchoolID   *string        `json:"schoolId" binding:"omitempty,uuid"`
	Class      string         `json:"class" binding:"required"`
	Section    string         `json:"section"`
	FatherName string         `json:"fatherName"`
	MotherName string         `json:"motherName"`
	Contact    ContactPayload `json:"contact"`
	Address    AddressPayload `json:"address"`
	IsActive   *bool          `json:"isActive"`
}

// StudentResponse is the public view of a student
type StudentResponse struct {
	ID            string         `json:"id"`
	RollNumber    string         `json:"rollNumber"`
	Name          string         `json:"name"`
	SchoolID      string         `json:"schoolId"`
	SchoolName    string         `json:"schoolName,omitempty"`
	Class         string         `json:"class"`
	Section       string         `json:"section"`
	FatherName    string         `json:"fatherName"`
	MotherName    string         `json:"motherName"`
	Contact       ContactPayload `json:"contact"`
	Address       AddressPayload `json:"address"`
	DateOfBirth   *time.Time     `json:"dateOfBirth,omitempty"`
	AdmissionDate *time.Time     `json:"admissionDate,omitempty"`
	IsActive      bool           `json:"isActive"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// ToStudentResponse maps a student to its public view
func ToStudentResponse(s *education.Student) StudentResponse {
	resp := StudentResponse{
		ID:         s.ID.String(),
		RollNumber: s.RollNumber,
		Name:       s.Name,
		SchoolID:   s.SchoolID.String(),
		Class:      s.Class,
		Section:    s.Section,
		FatherName: s.FatherName,
		MotherName: s.MotherName,
		Contact:    ContactPayload{Phone: s.Contact.Phone, Email: s.Contact.Email},
		Address: AddressPayload{
			Street: s.Address.Street, City: s.Address.City,
			State: s.Address.State, Pincode: s.Address.Pincode,
		},
		DateOfBirth:   s.DateOfBirth,
		AdmissionDate: s.AdmissionDate,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
	if s.School != nil {
		resp.SchoolName = s.School.Name
	}
	return resp
}

// ImportRowError reports one rejected row of a bulk import
type ImportRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult summarizes a bulk student import
type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
