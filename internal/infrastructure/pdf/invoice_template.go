package pdf

import (
	"bytes"
	"html/template"
)

// InvoiceLine is one row of the printed invoice
type InvoiceLine struct {
	ProductName string
	Quantity    int
	UnitPrice   string
	GstRate     string
	GstAmount   string
	Total       string
}

// InvoiceDocument carries everything the invoice template prints
type InvoiceDocument struct {
	InvoiceNumber string
	InvoiceDate   string
	CustomerName  string
	SchoolName    string
	RollNumber    string
	Class         string
	Lines         []InvoiceLine
	Subtotal      string
	GstAmount     string
	Discount      string
	TotalAmount   string
	PaymentStatus string
	PaymentMethod string
	Notes         string
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.InvoiceNumber}}</title>
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 18px; margin-bottom: 2px; }
  .meta { margin-bottom: 16px; }
  .meta td { padding: 2px 12px 2px 0; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 8px; }
  table.items th, table.items td { border: 1px solid #999; padding: 6px; text-align: right; }
  table.items th:first-child, table.items td:first-child { text-align: left; }
  table.items th { background: #f0f0f0; }
  .totals { margin-top: 12px; width: 280px; margin-left: auto; }
  .totals td { padding: 3px 8px; }
  .totals .grand { font-weight: bold; border-top: 2px solid #222; }
  .notes { margin-top: 20px; font-size: 11px; color: #555; }
</style>
</head>
<body>
<h1>Tax Invoice</h1>
<table class="meta">
  <tr><td>Invoice No</td><td>{{.InvoiceNumber}}</td></tr>
  <tr><td>Date</td><td>{{.InvoiceDate}}</td></tr>
  {{if .CustomerName}}<tr><td>Customer</td><td>{{.CustomerName}}</td></tr>{{end}}
  {{if .SchoolName}}<tr><td>School</td><td>{{.SchoolName}}</td></tr>{{end}}
  {{if .RollNumber}}<tr><td>Roll No</td><td>{{.RollNumber}}{{if .Class}} (Class {{.Class}}){{end}}</td></tr>{{end}}
</table>
<table class="items">
  <tr><th>Item</th><th>Qty</th><th>Rate</th><th>GST %</th><th>GST</th><th>Amount</th></tr>
  {{range .Lines}}
  <tr>
    <td>{{.ProductName}}</td>
    <td>{{.Quantity}}</td>
    <td>{{.UnitPrice}}</td>
    <td>{{.GstRate}}</td>
    <td>{{.GstAmount}}</td>
    <td>{{.Total}}</td>
  </tr>
  {{end}}
</table>
<table class="totals">
  <tr><td>Subtotal</td><td>{{.Subtotal}}</td></tr>
  <tr><td>GST</td><td>{{.GstAmount}}</td></tr>
  {{if .Discount}}<tr><td>Discount</td><td>-{{.Discount}}</td></tr>{{end}}
  <tr class="grand"><td>Total</td><td>{{.TotalAmount}}</td></tr>
  <tr><td>Payment</td><td>{{.PaymentStatus}} ({{.PaymentMethod}})</td></tr>
</table>
{{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
</body>
</html>`))

// RenderInvoiceHTML fills the invoice template
func RenderInvoiceHTML(doc *InvoiceDocument) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
