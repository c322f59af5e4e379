package order

import (
	"paytm-mcp/internal/daterange"
	"paytm-mcp/internal/result"
)

const (
	DefaultSearchType   = "TRANSACTION"
	DefaultSearchStatus = "SUCCESS"
	DefaultPageSize     = 50
)

// ListParams selects one page of the merchant order passbook. An empty
// SearchStatus leaves the status filter out of the request.
type ListParams struct {
	Range        daterange.Range
	SearchType   string
	SearchStatus string
	PageNumber   int
	PageSize     int
	IsSort       bool
}

// Order is one passbook row. The VAN fields are only set for bank transfer
// collections.
type Order struct {
	OrderID       string `json:"merchantOrderId"`
	TxnID         string `json:"txnId"`
	Amount        string `json:"amount"`
	PayMode       string `json:"payMode"`
	CreatedTime   string `json:"orderCreatedTime"`
	CompletedTime string `json:"orderCompletedTime"`
	Status        string `json:"orderSearchStatus"`
	MerchantName  string `json:"merchantName"`
	VanID         string `json:"vanId,omitempty"`
	RRN           string `json:"rrn,omitempty"`
	VanIfscCode   string `json:"vanIfscCode,omitempty"`
}

func (o Order) Fields() []result.Field {
	amount := "N/A"
	if o.Amount != "" {
		amount = "₹" + o.Amount
	}
	fields := []result.Field{
		{Label: "Order ID", Value: result.OrNA(o.OrderID)},
		{Label: "Transaction ID", Value: result.OrNA(o.TxnID)},
		{Label: "Amount", Value: amount},
		{Label: "Payment Mode", Value: result.OrNA(o.PayMode)},
		{Label: "Created Time", Value: result.OrNA(o.CreatedTime)},
		{Label: "Completed Time", Value: result.OrNA(o.CompletedTime)},
		{Label: "Status", Value: result.OrNA(o.Status)},
		{Label: "Merchant Name", Value: result.OrNA(o.MerchantName)},
	}
	if o.VanID != "" {
		fields = append(fields, result.Field{Label: "VAN ID", Value: o.VanID})
	}
	if o.RRN != "" {
		fields = append(fields, result.Field{Label: "RRN", Value: o.RRN})
	}
	if o.VanIfscCode != "" {
		fields = append(fields, result.Field{Label: "VAN IFSC Code", Value: o.VanIfscCode})
	}
	return fields
}
