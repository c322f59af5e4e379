package refund

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"paytm-mcp/internal/checksum"
	"paytm-mcp/internal/config"
	"paytm-mcp/internal/gateway"
)

const (
	PathApply  = "/refund/apply"
	PathStatus = "/v2/refund/status"
	PathList   = "/merchant-passbook/api/v1/refundList"

	txnTypeRefund = "REFUND"
)

type applyBody struct {
	Mid          string `json:"mid"`
	TxnType      string `json:"txnType"`
	OrderID      string `json:"orderId"`
	TxnID        string `json:"txnId"`
	RefID        string `json:"refId"`
	RefundAmount string `json:"refundAmount"`
}

type statusBody struct {
	Mid     string `json:"mid"`
	OrderID string `json:"orderId"`
	RefID   string `json:"refId"`
}

// The passbook refund list wants every scalar quoted.
type listBody struct {
	Mid       string `json:"mid"`
	IsSort    string `json:"isSort"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	PageNum   string `json:"pageNum"`
	PageSize  string `json:"pageSize"`
}

// ValidateRefID checks the reference id the merchant chose for a refund.
func ValidateRefID(refID string) error {
	refID = strings.TrimSpace(refID)
	if refID == "" {
		return ErrRefIDRequired
	}
	if utf8.RuneCountInString(refID) > MaxRefIDLength {
		return ErrRefIDTooLong
	}
	return nil
}

// BuildApply assembles the /refund/apply envelope. The head carries only the
// signature and the amount is always sent with two decimals.
func BuildApply(creds config.Credentials, signer checksum.Signer, p ApplyParams) (gateway.Envelope, error) {
	orderID := strings.TrimSpace(p.OrderID)
	txnID := strings.TrimSpace(p.TxnID)
	switch {
	case orderID == "":
		return gateway.Envelope{}, ErrOrderIDRequired
	case txnID == "":
		return gateway.Envelope{}, ErrTxnIDRequired
	}
	if err := ValidateRefID(p.RefID); err != nil {
		return gateway.Envelope{}, err
	}
	if !p.Amount.IsPositive() {
		return gateway.Envelope{}, ErrInvalidAmount
	}

	return gateway.Seal(signer, creds.SigningSecret, gateway.HeadSpec{}, applyBody{
		Mid:          creds.MerchantID,
		TxnType:      txnTypeRefund,
		OrderID:      orderID,
		TxnID:        txnID,
		RefID:        strings.TrimSpace(p.RefID),
		RefundAmount: p.Amount.StringFixed(2),
	})
}

func BuildStatus(creds config.Credentials, signer checksum.Signer, p StatusParams) (gateway.Envelope, error) {
	orderID := strings.TrimSpace(p.OrderID)
	if orderID == "" {
		return gateway.Envelope{}, ErrOrderIDRequired
	}
	if err := ValidateRefID(p.RefID); err != nil {
		return gateway.Envelope{}, err
	}

	return gateway.Seal(signer, creds.SigningSecret, gateway.HeadSpec{}, statusBody{
		Mid:     creds.MerchantID,
		OrderID: orderID,
		RefID:   strings.TrimSpace(p.RefID),
	})
}

func BuildList(creds config.Credentials, signer checksum.Signer, p ListParams) (gateway.Envelope, error) {
	if p.Range.From == "" || p.Range.To == "" {
		return gateway.Envelope{}, ErrDateRangeRequired
	}
	if p.PageNum < 1 || p.PageSize < 1 {
		return gateway.Envelope{}, ErrInvalidPage
	}

	return gateway.Seal(signer, creds.SigningSecret, gateway.HeadSpec{TokenType: gateway.TokenChecksum}, listBody{
		Mid:       creds.MerchantID,
		IsSort:    strconv.FormatBool(p.IsSort),
		StartDate: p.Range.From,
		EndDate:   p.Range.To,
		PageNum:   strconv.Itoa(p.PageNum),
		PageSize:  strconv.Itoa(p.PageSize),
	})
}
