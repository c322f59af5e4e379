package payment

import (
	"github.com/shopspring/decimal"

	"paytm-mcp/internal/result"
)

const (
	LinkTypeFixed   = "FIXED"
	LinkTypeGeneric = "GENERIC"
)

// CreateLinkParams are the inputs of a payment link. Nil pointers are absent values.
type CreateLinkParams struct {
	RecipientName  string
	Purpose        string
	CustomerEmail  *string
	CustomerMobile *string
	Amount         *decimal.Decimal
}

// PaymentLink is a link as listed by the gateway.
type PaymentLink struct {
	LinkID      string `json:"linkId"`
	LinkName    string `json:"linkName"`
	ShortURL    string `json:"shortUrl"`
	Status      string `json:"status"`
	CreatedDate string `json:"createdDate"`
	ExpiryDate  string `json:"expiryDate"`
}

func (l PaymentLink) Fields() []result.Field {
	return []result.Field{
		{Label: "Link ID", Value: result.OrNA(l.LinkID)},
		{Label: "Name", Value: result.OrNA(l.LinkName)},
		{Label: "Short URL", Value: result.OrNA(l.ShortURL)},
		{Label: "Status", Value: l.Status},
		{Label: "Created", Value: result.OrNA(l.CreatedDate)},
		{Label: "Expires", Value: result.OrNA(l.ExpiryDate)},
	}
}

// CreatedLink is what the gateway hands back for a new link.
type CreatedLink struct {
	LinkID   string `json:"linkId"`
	ShortURL string `json:"shortUrl"`
}

func (c CreatedLink) Fields() []result.Field {
	return []result.Field{
		{Label: "url", Value: result.OrNA(c.ShortURL)},
		{Label: "linkId", Value: result.OrNA(c.LinkID)},
	}
}

// Transaction is one payment made against a link.
type Transaction struct {
	TxnID         string `json:"txnId"`
	OrderID       string `json:"orderId"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	CompletedTime string `json:"completedTime"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

func (t Transaction) Fields() []result.Field {
	return []result.Field{
		{Label: "Transaction ID", Value: result.OrNA(t.TxnID)},
		{Label: "Order ID", Value: result.OrNA(t.OrderID)},
		{Label: "Amount", Value: result.OrNA(t.Amount)},
		{Label: "Status", Value: result.OrNA(t.Status)},
		{Label: "Completed", Value: result.OrNA(t.CompletedTime)},
		{Label: "Customer Phone", Value: result.OrNA(t.CustomerPhone)},
		{Label: "Customer Email", Value: result.OrNA(t.CustomerEmail)},
	}
}
