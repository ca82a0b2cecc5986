package evaluator

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"automation-dashboard/internal/faults"
	"automation-dashboard/internal/model"
)

const taxRate = 0.08

// InvoiceCalculator builds invoices from loosely-typed client info and line
// items.
type InvoiceCalculator struct {
	logger *zap.Logger
}

func NewInvoiceCalculator(logger *zap.Logger) *InvoiceCalculator {
	return &InvoiceCalculator{logger: logger}
}

// Generate validates the inputs, computes per-item and aggregate totals with
// 2-decimal rounding, and stamps a fresh invoice number. Unexpected failures
// surface under a generic "Invoice generation failed" message with the
// original preserved as cause.
func (c *InvoiceCalculator) Generate(clientInfo map[string]any, items []map[string]any) (inv *model.Invoice, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Invoice generation panicked", zap.Any("panic", r))
			inv = nil
			err = &faults.Error{
				Kind:    faults.KindValidation,
				Message: "Invoice generation failed",
				Cause:   fmt.Errorf("%v", r),
			}
		}
	}()

	name := strings.TrimSpace(cast.ToString(clientInfo["name"]))
	if name == "" {
		return nil, faults.Validation("client name is required")
	}
	if len(items) == 0 {
		return nil, faults.Validation("items must be a non-empty list")
	}

	invoiceItems := make([]model.InvoiceItem, 0, len(items))
	subtotal := 0.0
	for i, item := range items {
		quantity, qerr := cast.ToFloat64E(item["quantity"])
		if qerr != nil {
			return nil, faults.Validation("item %d: quantity must be numeric", i)
		}
		price, perr := cast.ToFloat64E(item["price"])
		if perr != nil {
			return nil, faults.Validation("item %d: price must be numeric", i)
		}
		if quantity <= 0 {
			return nil, faults.Validation("item %d: quantity must be greater than zero", i)
		}
		if price < 0 {
			return nil, faults.Validation("item %d: price must not be negative", i)
		}

		total := round2(quantity * price)
		subtotal += total
		invoiceItems = append(invoiceItems, model.InvoiceItem{
			Description: cast.ToString(item["description"]),
			Quantity:    quantity,
			Price:       price,
			Total:       total,
		})
	}

	subtotal = round2(subtotal)
	taxAmount := round2(subtotal * taxRate)
	total := round2(subtotal + taxAmount)

	now := time.Now().UTC()
	invoice := &model.Invoice{
		InvoiceNumber: newInvoiceNumber(),
		Date:          now.Format("2006-01-02"),
		DueDate:       now.AddDate(0, 0, 30).Format("2006-01-02"),
		Client: model.InvoiceClient{
			Name:    name,
			Email:   cast.ToString(clientInfo["email"]),
			Address: cast.ToString(clientInfo["address"]),
		},
		Items:     invoiceItems,
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: taxAmount,
		Total:     total,
		Status:    "pending",
	}

	c.logger.Debug("Generated invoice",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Float64("total", invoice.Total),
		zap.Int("item_count", len(invoice.Items)),
	)
	return invoice, nil
}

// newInvoiceNumber returns "INV-" plus 8 uppercase hex characters. Fresh
// randomness per call; collisions are not deduplicated against history.
func newInvoiceNumber() string {
	u := uuid.New()
	return "INV-" + strings.ToUpper(hex.EncodeToString(u[:4]))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
