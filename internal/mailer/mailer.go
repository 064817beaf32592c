// Package mailer renders and sends invoice emails through Resend.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/canvascartel/crm-backend/internal/ledger"
	"github.com/canvascartel/crm-backend/internal/money"
	"github.com/canvascartel/crm-backend/models"
	"github.com/resend/resend-go/v2"
)

var ErrNotConfigured = errors.New("mailer: RESEND_API_KEY not configured")

type Mailer struct {
	client *resend.Client
	from   string
}

// New builds a mailer, or one that fails with ErrNotConfigured when apiKey is
// empty. The server keeps running without email; only the send endpoint
// reports the missing key.
func New(apiKey, from string) *Mailer {
	m := &Mailer{from: from}
	if apiKey != "" {
		m.client = resend.NewClient(apiKey)
	}
	return m
}

func (m *Mailer) Configured() bool {
	return m != nil && m.client != nil
}

// InvoiceEmail is everything the template needs, preformatted where currency
// display is involved.
type InvoiceEmail struct {
	CompanyName    string
	CompanyEmail   string
	CompanyPhone   string
	CompanyAddress string
	Currency       string
	Invoice        models.Invoice
	Items          []itemRow
	Subtotal       string
	DiscountLabel  string
	DiscountAmount string
	TaxLabel       string
	TaxAmount      string
	Total          string
	AmountPaid     string
	BalanceDue     string
	AmountInWords  string
	DueDate        string
}

type itemRow struct {
	Description string
	Quantity    int
	Rate        string
	Amount      string
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1a1a1a; margin: 0; padding: 24px; background: #f5f5f5;">
  <div style="max-width: 640px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="margin: 0 0 4px; font-size: 22px;">{{.CompanyName}}</h1>
    <p style="margin: 0; color: #666; font-size: 13px;">{{.CompanyAddress}}<br>{{.CompanyEmail}} {{if .CompanyPhone}}&middot; {{.CompanyPhone}}{{end}}</p>
    <hr style="border: none; border-top: 1px solid #e5e5e5; margin: 24px 0;">
    <h2 style="font-size: 18px; margin: 0 0 8px;">Invoice {{.Invoice.InvoiceNumber}}</h2>
    <p style="margin: 0 0 16px; font-size: 14px;">
      Billed to: <strong>{{.Invoice.ClientName}}</strong><br>
      {{if .Invoice.ClientAddress}}{{.Invoice.ClientAddress}}<br>{{end}}
      {{if .DueDate}}Due date: {{.DueDate}}{{end}}
    </p>
    <table style="width: 100%; border-collapse: collapse; font-size: 14px;">
      <thead>
        <tr style="background: #f0f0f0; text-align: left;">
          <th style="padding: 8px;">Description</th>
          <th style="padding: 8px; text-align: right;">Qty</th>
          <th style="padding: 8px; text-align: right;">Rate</th>
          <th style="padding: 8px; text-align: right;">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr style="border-bottom: 1px solid #eee;">
          <td style="padding: 8px;">{{.Description}}</td>
          <td style="padding: 8px; text-align: right;">{{.Quantity}}</td>
          <td style="padding: 8px; text-align: right;">{{$.Currency}}{{.Rate}}</td>
          <td style="padding: 8px; text-align: right;">{{$.Currency}}{{.Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <table style="width: 100%; margin-top: 16px; font-size: 14px;">
      <tr><td style="text-align: right; padding: 2px 8px;">Subtotal:</td><td style="text-align: right; width: 120px;">{{.Currency}}{{.Subtotal}}</td></tr>
      {{if .DiscountLabel}}<tr><td style="text-align: right; padding: 2px 8px;">{{.DiscountLabel}}:</td><td style="text-align: right;">-{{.Currency}}{{.DiscountAmount}}</td></tr>{{end}}
      {{if .TaxLabel}}<tr><td style="text-align: right; padding: 2px 8px;">{{.TaxLabel}}:</td><td style="text-align: right;">{{.Currency}}{{.TaxAmount}}</td></tr>{{end}}
      <tr style="font-weight: bold; font-size: 15px;"><td style="text-align: right; padding: 6px 8px;">Total:</td><td style="text-align: right;">{{.Currency}}{{.Total}}</td></tr>
      {{if ne .AmountPaid "0.00"}}<tr><td style="text-align: right; padding: 2px 8px;">Amount paid:</td><td style="text-align: right;">{{.Currency}}{{.AmountPaid}}</td></tr>
      <tr><td style="text-align: right; padding: 2px 8px;">Balance due:</td><td style="text-align: right;">{{.Currency}}{{.BalanceDue}}</td></tr>{{end}}
    </table>
    <p style="font-size: 13px; color: #444; margin-top: 12px;"><em>Amount in words: {{.AmountInWords}} only</em></p>
    {{if .Invoice.Notes}}<p style="font-size: 13px; color: #666; margin-top: 16px;">{{.Invoice.Notes}}</p>{{end}}
    <hr style="border: none; border-top: 1px solid #e5e5e5; margin: 24px 0;">
    <p style="font-size: 12px; color: #999; text-align: center;">Thank you for your business!</p>
  </div>
</body>
</html>`))

// BuildInvoiceEmail assembles the template data from the invoice, its derived
// ledger state and the company settings map.
func BuildInvoiceEmail(inv models.Invoice, items []models.InvoiceItem, state ledger.State, settings map[string]string) InvoiceEmail {
	data := InvoiceEmail{
		CompanyName:    settings["company_name"],
		CompanyEmail:   settings["company_email"],
		CompanyPhone:   settings["company_phone"],
		CompanyAddress: settings["company_address"],
		Currency:       settings["currency_symbol"],
		Invoice:        inv,
		Subtotal:       money.Format(state.Subtotal),
		Total:          money.Format(state.Total),
		AmountPaid:     money.Format(state.AmountPaid),
		BalanceDue:     money.Format(state.Total - state.AmountPaid),
		AmountInWords:  money.Words(state.Total),
	}
	if data.Currency == "" {
		data.Currency = "₹"
	}
	for _, item := range items {
		data.Items = append(data.Items, itemRow{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        money.Format(item.Rate),
			Amount:      money.Format(item.Amount),
		})
	}
	switch ledger.DiscountType(inv.DiscountType) {
	case ledger.DiscountPercentage:
		data.DiscountLabel = fmt.Sprintf("Discount (%g%%)", inv.DiscountValue)
		data.DiscountAmount = money.Format(state.DiscountAmount)
	case ledger.DiscountFixed:
		data.DiscountLabel = "Discount"
		data.DiscountAmount = money.Format(state.DiscountAmount)
	}
	if inv.TaxPercentage != 0 {
		data.TaxLabel = fmt.Sprintf("Tax (%g%%)", inv.TaxPercentage)
		data.TaxAmount = money.Format(state.TaxAmount)
	}
	if inv.DueDate != nil {
		data.DueDate = inv.DueDate.Format("02 Jan 2006")
	}
	return data
}

// SendInvoice renders the invoice email and sends it to the invoice's client
// address.
func (m *Mailer) SendInvoice(ctx context.Context, data InvoiceEmail) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	var body bytes.Buffer
	if err := invoiceTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render invoice email: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{data.Invoice.ClientEmail},
		Subject: fmt.Sprintf("Invoice %s from %s", data.Invoice.InvoiceNumber, data.CompanyName),
		Html:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("send invoice email: %w", err)
	}
	return nil
}
