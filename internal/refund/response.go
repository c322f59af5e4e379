package refund

import (
	"encoding/json"
	"fmt"

	"paytm-mcp/internal/result"
	"paytm-mcp/internal/utils"
)

type resultInfo struct {
	ResultStatus string           `json:"resultStatus"`
	ResultCode   utils.FlexString `json:"resultCode"`
	ResultMsg    string           `json:"resultMsg"`
}

func rejected(prefix, msg string, code utils.FlexString) result.Result {
	if msg == "" {
		msg = "Unknown error"
	}
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	if code != "" {
		msg = fmt.Sprintf("%s (code %s)", msg, code)
	}
	return result.Failure(result.KindGatewayRejected, msg)
}

type applyResponse struct {
	Body struct {
		ResultInfo   resultInfo       `json:"resultInfo"`
		RefundID     utils.FlexString `json:"refundId"`
		TxnID        utils.FlexString `json:"txnId"`
		RefundAmount utils.FlexString `json:"refundAmount"`
	} `json:"body"`
}

type statusResponse struct {
	Body struct {
		ResultInfo        resultInfo       `json:"resultInfo"`
		RefundStatus      string           `json:"refundStatus"`
		RefundID          utils.FlexString `json:"refundId"`
		TxnID             utils.FlexString `json:"txnId"`
		TotalRefundAmount utils.FlexString `json:"totalRefundAmount"`
		RefundAmount      utils.FlexString `json:"refundAmount"`
		TxnAmount         utils.FlexString `json:"txnAmount"`
	} `json:"body"`
}

// The refund list reports its verdict at the top level rather than in body.
type listResponse struct {
	Status       string           `json:"status"`
	Count        utils.FlexString `json:"count"`
	ErrorMessage string           `json:"errorMessage"`
	ErrorCode    utils.FlexString `json:"errorCode"`
	Orders       []struct {
		OrderID               utils.FlexString `json:"orderId"`
		RefundID              utils.FlexString `json:"refundId"`
		RefID                 utils.FlexString `json:"refId"`
		TxnAmount             utils.FlexString `json:"txnAmount"`
		RefundAmount          utils.FlexString `json:"refundAmount"`
		AcceptRefundStatus    string           `json:"acceptRefundStatus"`
		AcceptRefundTimeStamp utils.FlexString `json:"acceptRefundTimeStamp"`
	} `json:"orders"`
}

// NormalizeApply classifies a /refund/apply response. PENDING and TXN_SUCCESS
// are accepted refunds; everything else is a rejection.
func NormalizeApply(raw []byte) result.Result {
	var resp applyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return result.Failuref(result.KindProtocol, "decode refund response: %v", err)
	}
	info := resp.Body.ResultInfo
	if info.ResultStatus == "" {
		return result.Failure(result.KindProtocol, "refund response has no body.resultInfo.resultStatus")
	}

	receipt := Receipt{
		Status:       info.ResultStatus,
		Message:      info.ResultMsg,
		Code:         info.ResultCode.String(),
		RefundID:     resp.Body.RefundID.String(),
		TxnID:        resp.Body.TxnID.String(),
		RefundAmount: resp.Body.RefundAmount.String(),
	}

	switch info.ResultStatus {
	case StatusPending:
		return result.Success("Refund initiated successfully and is pending:", receipt)
	case StatusSuccess:
		return result.Success("Refund processed successfully:", receipt)
	case StatusFailure:
		return rejected("Refund initiation failed", info.ResultMsg, info.ResultCode)
	default:
		return rejected("unexpected refund status "+info.ResultStatus, info.ResultMsg, info.ResultCode)
	}
}

// NormalizeStatus projects a /v2/refund/status response. Any response naming
// a refund is reported, whatever state the refund is in.
func NormalizeStatus(raw []byte) result.Result {
	var resp statusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return result.Failuref(result.KindProtocol, "decode refund status response: %v", err)
	}
	b := resp.Body
	if b.RefundID == "" && b.RefundStatus == "" {
		if b.ResultInfo.ResultStatus == "" && b.ResultInfo.ResultMsg == "" {
			return result.Failure(result.KindProtocol, "refund status response has neither refund details nor resultInfo")
		}
		return rejected("", b.ResultInfo.ResultMsg, b.ResultInfo.ResultCode)
	}

	return result.Success("Refund status:", Status{
		RefundStatus:      b.RefundStatus,
		Message:           b.ResultInfo.ResultMsg,
		RefundID:          b.RefundID.String(),
		TxnID:             b.TxnID.String(),
		TotalRefundAmount: b.TotalRefundAmount.String(),
		RefundAmount:      b.RefundAmount.String(),
		TxnAmount:         b.TxnAmount.String(),
	})
}

// NormalizeList projects a refund list page, with the gateway's total count
// as footer.
func NormalizeList(raw []byte) result.Result {
	var resp listResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return result.Failuref(result.KindProtocol, "decode refund list response: %v", err)
	}
	if resp.Status == "" {
		return result.Failure(result.KindProtocol, "refund list response has no status")
	}
	if resp.Status != "SUCCESS" {
		return rejected("", resp.ErrorMessage, resp.ErrorCode)
	}
	if len(resp.Orders) == 0 {
		return result.Empty("No refunds found for the given date range.")
	}

	records := make([]result.Record, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		records = append(records, Record{
			OrderID:      o.OrderID.String(),
			RefundID:     o.RefundID.String(),
			RefID:        o.RefID.String(),
			TxnAmount:    o.TxnAmount.String(),
			RefundAmount: o.RefundAmount.String(),
			Status:       o.AcceptRefundStatus,
			RefundTime:   o.AcceptRefundTimeStamp.String(),
		})
	}

	count := resp.Count.String()
	if count == "" {
		count = fmt.Sprint(len(records))
	}
	return result.Success("Refunds List:", records...).
		WithFooter(result.Field{Label: "Count", Value: count})
}
