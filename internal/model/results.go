package model

// ParsedEmail is the email-parser output.
type ParsedEmail struct {
	Sender      string   `json:"sender"`
	Subject     string   `json:"subject"`
	Date        string   `json:"date"`
	Attachments []string `json:"attachments"`
	ActionItems []string `json:"action_items"`
	Priority    string   `json:"priority"` // high or normal
}

// InvoiceClient is the billed party.
type InvoiceClient struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// InvoiceItem is one line item with its rounded total.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Invoice is the invoice-generator output. Total equals subtotal plus
// tax_amount within 2-decimal rounding.
type Invoice struct {
	InvoiceNumber string        `json:"invoice_number"`
	Date          string        `json:"date"`
	DueDate       string        `json:"due_date"`
	Client        InvoiceClient `json:"client"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TaxRate       float64       `json:"tax_rate"`
	TaxAmount     float64       `json:"tax_amount"`
	Total         float64       `json:"total"`
	Status        string        `json:"status"` // always pending
}

// LeadScore is the lead-scorer output. Score is the sum of mutually
// exclusive tier bonuses; LeadData echoes the normalized inputs.
type LeadScore struct {
	Score    int            `json:"score"`
	Quality  string         `json:"quality"` // hot, warm, cold, unqualified
	Factors  []string       `json:"factors"`
	LeadData map[string]any `json:"lead_data"`
}
