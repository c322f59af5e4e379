package refund

import (
	"github.com/shopspring/decimal"

	"paytm-mcp/internal/daterange"
	"paytm-mcp/internal/result"
)

// Gateway refund statuses.
const (
	StatusPending = "PENDING"
	StatusSuccess = "TXN_SUCCESS"
	StatusFailure = "TXN_FAILURE"
)

type ApplyParams struct {
	OrderID string
	RefID   string
	TxnID   string
	Amount  decimal.Decimal
}

type StatusParams struct {
	OrderID string
	RefID   string
}

type ListParams struct {
	Range    daterange.Range
	IsSort   bool
	PageNum  int
	PageSize int
}

// Receipt is the gateway's answer to a refund initiation.
type Receipt struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Code         string `json:"code"`
	RefundID     string `json:"refundId"`
	TxnID        string `json:"txnId"`
	RefundAmount string `json:"refundAmount"`
}

func (r Receipt) Fields() []result.Field {
	return []result.Field{
		{Label: "Refund Status", Value: result.OrNA(r.Status)},
		{Label: "Message", Value: result.OrNA(r.Message)},
		{Label: "Code", Value: result.OrNA(r.Code)},
		{Label: "Refund ID", Value: result.OrNA(r.RefundID)},
		{Label: "Paytm Txn ID", Value: result.OrNA(r.TxnID)},
		{Label: "Refund Amount", Value: result.OrNA(r.RefundAmount)},
	}
}

// Status is the current state of a previously initiated refund.
type Status struct {
	RefundStatus      string `json:"refundStatus"`
	Message           string `json:"message"`
	RefundID          string `json:"refundId"`
	TxnID             string `json:"txnId"`
	TotalRefundAmount string `json:"totalRefundAmount"`
	RefundAmount      string `json:"refundAmount"`
	TxnAmount         string `json:"txnAmount"`
}

func (s Status) Fields() []result.Field {
	return []result.Field{
		{Label: "Refund Status", Value: result.OrNA(s.RefundStatus)},
		{Label: "Details", Value: result.OrNA(s.Message)},
		{Label: "Refund ID", Value: result.OrNA(s.RefundID)},
		{Label: "Txn ID", Value: result.OrNA(s.TxnID)},
		{Label: "Total Refund Amount", Value: result.OrNA(s.TotalRefundAmount)},
		{Label: "Refund Amount", Value: result.OrNA(s.RefundAmount)},
		{Label: "Txn Amount", Value: result.OrNA(s.TxnAmount)},
	}
}

// Record is one row of the merchant refund list.
type Record struct {
	OrderID      string `json:"orderId"`
	RefundID     string `json:"refundId"`
	RefID        string `json:"refId"`
	TxnAmount    string `json:"txnAmount"`
	RefundAmount string `json:"refundAmount"`
	Status       string `json:"status"`
	RefundTime   string `json:"refundTime"`
}

func (r Record) Fields() []result.Field {
	return []result.Field{
		{Label: "Order ID", Value: result.OrNA(r.OrderID)},
		{Label: "Refund ID", Value: result.OrNA(r.RefundID)},
		{Label: "Ref ID", Value: result.OrNA(r.RefID)},
		{Label: "Txn Amount", Value: result.OrNA(r.TxnAmount)},
		{Label: "Refund Amount", Value: result.OrNA(r.RefundAmount)},
		{Label: "Status", Value: result.OrNA(r.Status)},
		{Label: "Refund Time", Value: result.OrNA(r.RefundTime)},
	}
}
