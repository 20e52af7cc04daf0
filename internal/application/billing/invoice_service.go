package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/schoolkart/backend/internal/domain/catalog"
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/schoolkart/backend/internal/infrastructure/pdf"
	"go.uber.org/zap"
)

// PDFRenderer renders an HTML document to PDF bytes
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// numberRetries bounds how often a create is retried after losing a
// document-number race
const numberRetries = 2

// InvoiceService handles sales invoicing. Creating or editing an invoice
// moves stock, writes the invoice and adjusts the school commission in a
// single transaction.
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	commissionRepo billing.CommissionRepository
	productRepo    catalog.ProductRepository
	studentRepo    education.StudentRepository
	schoolRepo     education.SchoolRepository
	uow            billing.UnitOfWork
	renderer       PDFRenderer
	logger         *zap.Logger
}

// NewInvoiceService creates a new InvoiceService. The renderer may be nil
// when PDF output is disabled.
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	commissionRepo billing.CommissionRepository,
	productRepo catalog.ProductRepository,
	studentRepo education.StudentRepository,
	schoolRepo education.SchoolRepository,
	uow billing.UnitOfWork,
	renderer PDFRenderer,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:    invoiceRepo,
		commissionRepo: commissionRepo,
		productRepo:    productRepo,
		studentRepo:    studentRepo,
		schoolRepo:     schoolRepo,
		uow:            uow,
		renderer:       renderer,
		logger:         logger.Named("invoice"),
	}
}

// Create issues a new invoice. Items are priced from the product catalog;
// stock is reserved and a commission is accrued for the student's school,
// all atomically.
func (s *InvoiceService) Create(ctx context.Context, scope identity.Scope, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid student ID")
	}
	student, err := s.studentRepo.FindByID(ctx, scope, studentID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Student not found")
	}
	school, err := s.schoolRepo.FindByID(ctx, scope, student.SchoolID)
	if err != nil {
		return nil, err
	}

	items, err := s.priceItems(ctx, scope, req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(scope.AdminID, number, student.ID, items, req.Discount)
	if err != nil {
		return nil, err
	}
	invoice.AttachSchool(school.ID, school.CommissionRate)
	invoice.Notes = req.Notes
	if req.PaymentStatus != "" || req.PaymentMethod != "" {
		status := invoice.PaymentStatus
		method := invoice.PaymentMethod
		if req.PaymentStatus != "" {
			status = billing.PaymentStatus(req.PaymentStatus)
		}
		if req.PaymentMethod != "" {
			method = billing.PaymentMethod(req.PaymentMethod)
		}
		if err := invoice.SetPayment(status, method); err != nil {
			return nil, err
		}
	}

	// Concurrent creations can race to the same number; the unique index
	// rejects the loser, which regenerates and tries again.
	for attempt := 0; ; attempt++ {
		err = s.uow.InTransaction(ctx, func(repos billing.TxRepos) error {
			for _, item := range invoice.Items {
				if err := repos.Products.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
					return stockError(err, item.ProductName)
				}
			}
			if err := repos.Invoices.Save(ctx, invoice); err != nil {
				return err
			}
			commission, err := billing.NewCommission(scope.AdminID, invoice.ID, school.ID,
				invoice.Subtotal, school.CommissionRate, invoice.InvoiceDate)
			if err != nil {
				return err
			}
			return repos.Commissions.Save(ctx, commission)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrDuplicateKey) || attempt >= numberRetries {
			return nil, err
		}
		number, nerr := s.invoiceRepo.NextNumber(ctx)
		if nerr != nil {
			return nil, nerr
		}
		invoice.InvoiceNumber = number
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("total", invoice.TotalAmount.StringFixed(2)))

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// GetByID retrieves an invoice visible to the scope
func (s *InvoiceService) GetByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// List retrieves invoices visible to the scope
func (s *InvoiceService) List(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[InvoiceResponse], error) {
	page, err := s.invoiceRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[InvoiceResponse]{}, err
	}

	items := make([]InvoiceResponse, len(page.Items))
	for i, invoice := range page.Items {
		items[i] = ToInvoiceResponse(invoice)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.Limit), nil
}

// Update replaces an unpaid invoice's lines. Old stock is released, new
// stock reserved and the school commission rebased in one transaction.
func (s *InvoiceService) Update(ctx context.Context, scope identity.Scope, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if !invoice.IsEditable() {
		return nil, shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be edited")
	}

	items, err := s.priceItems(ctx, scope, req.Items)
	if err != nil {
		return nil, err
	}

	oldItems := invoice.Items
	if err := invoice.ReplaceItems(items, req.Discount); err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes
	if req.PaymentStatus != "" || req.PaymentMethod != "" {
		status := invoice.PaymentStatus
		method := invoice.PaymentMethod
		if req.PaymentStatus != "" {
			status = billing.PaymentStatus(req.PaymentStatus)
		}
		if req.PaymentMethod != "" {
			method = billing.PaymentMethod(req.PaymentMethod)
		}
		if err := invoice.SetPayment(status, method); err != nil {
			return nil, err
		}
	}

	err = s.uow.InTransaction(ctx, func(repos billing.TxRepos) error {
		for _, item := range oldItems {
			if err := repos.Products.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		for _, item := range invoice.Items {
			if err := repos.Products.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
				return stockError(err, item.ProductName)
			}
		}
		if err := repos.Invoices.Save(ctx, invoice); err != nil {
			return err
		}
		commission, err := repos.Commissions.FindByInvoiceID(ctx, invoice.ID)
		if err != nil {
			if err == shared.ErrNotFound {
				return nil
			}
			return err
		}
		if err := commission.Rebase(invoice.Subtotal); err != nil {
			return err
		}
		return repos.Commissions.Save(ctx, commission)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice updated",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("total", invoice.TotalAmount.StringFixed(2)))

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Delete removes an invoice, returning its items to stock and dropping
// the pending commission. Invoices whose commission is already settled
// cannot be deleted.
func (s *InvoiceService) Delete(ctx context.Context, scope identity.Scope, id uuid.UUID) error {
	invoice, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return err
	}

	err = s.uow.InTransaction(ctx, func(repos billing.TxRepos) error {
		commission, err := repos.Commissions.FindByInvoiceID(ctx, invoice.ID)
		if err != nil && err != shared.ErrNotFound {
			return err
		}
		if commission != nil && commission.Status == billing.CommissionSettled {
			return shared.NewDomainError("ALREADY_SETTLED", "Invoice commission is already settled")
		}
		for _, item := range invoice.Items {
			if err := repos.Products.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := repos.Commissions.DeleteByInvoiceID(ctx, invoice.ID); err != nil {
			return err
		}
		return repos.Invoices.Delete(ctx, invoice.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("invoice deleted",
		zap.String("invoice_id", id.String()),
		zap.String("invoice_number", invoice.InvoiceNumber))
	return nil
}

// RenderPDF renders the invoice as a printable A4 PDF
func (s *InvoiceService) RenderPDF(ctx context.Context, scope identity.Scope, id uuid.UUID) ([]byte, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError("BUSINESS_RULE", "PDF rendering is not enabled")
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	doc := &pdf.InvoiceDocument{
		InvoiceNumber: invoice.InvoiceNumber,
		InvoiceDate:   invoice.InvoiceDate.Format("02 Jan 2006"),
		Subtotal:      invoice.Subtotal.StringFixed(2),
		GstAmount:     invoice.GstAmount.StringFixed(2),
		TotalAmount:   invoice.TotalAmount.StringFixed(2),
		PaymentStatus: string(invoice.PaymentStatus),
		PaymentMethod: string(invoice.PaymentMethod),
		Notes:         invoice.Notes,
	}
	if invoice.Discount.IsPositive() {
		doc.Discount = invoice.Discount.StringFixed(2)
	}
	if student, err := s.studentRepo.FindByIDUnscoped(ctx, invoice.StudentID); err == nil {
		doc.CustomerName = student.Name
		doc.RollNumber = student.RollNumber
		doc.Class = student.Class
	}
	if invoice.SchoolID != nil {
		school, err := s.schoolRepo.FindByIDUnscoped(ctx, *invoice.SchoolID)
		if err == nil {
			doc.SchoolName = school.Name
		}
	}
	for _, item := range invoice.Items {
		doc.Lines = append(doc.Lines, pdf.InvoiceLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			GstRate:     item.GstRate.StringFixed(1),
			GstAmount:   item.GstAmount.StringFixed(2),
			Total:       item.Total.StringFixed(2),
		})
	}

	html, err := pdf.RenderInvoiceHTML(doc)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(ctx, html)
}

// priceItems resolves requested lines against the catalog. Prices and GST
// rates always come from the product, never from the caller.
func (s *InvoiceService) priceItems(ctx context.Context, scope identity.Scope, reqs []InvoiceItemRequest) ([]billing.InvoiceItem, error) {
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		id, err := uuid.Parse(r.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid product ID")
		}
		ids = append(ids, id)
	}

	products, err := s.productRepo.FindByIDs(ctx, scope, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]billing.InvoiceItem, 0, len(reqs))
	for i, r := range reqs {
		product, ok := byID[ids[i]]
		if !ok {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Product not found")
		}
		if !product.IsActive {
			return nil, shared.NewDomainError("VALIDATION_ERROR",
				fmt.Sprintf("Product %q is inactive", product.Name))
		}
		item, err := billing.NewInvoiceItem(product.ID, product.Name, r.Quantity, product.BasePrice, product.GstRate)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *InvoiceService) findOwned(ctx context.Context, scope identity.Scope, id uuid.UUID) (*billing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByIDUnscoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(invoice.CreatedBy) {
		return nil, shared.ErrForbidden
	}
	return invoice, nil
}

// stockError names the product in an insufficient-stock failure
func stockError(err error, productName string) error {
	if err == shared.ErrInsufficientStock {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %q", productName))
	}
	return err
}
