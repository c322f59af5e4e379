package order

import (
	"encoding/json"
	"fmt"
	"strconv"

	"paytm-mcp/internal/result"
	"paytm-mcp/internal/utils"
)

type passbookOrder struct {
	MerchantOrderID    utils.FlexString `json:"merchantOrderId"`
	TxnID              utils.FlexString `json:"txnId"`
	Amount             utils.FlexString `json:"amount"`
	PayMode            string           `json:"payMode"`
	OrderCreatedTime   string           `json:"orderCreatedTime"`
	OrderCompletedTime string           `json:"orderCompletedTime"`
	OrderSearchStatus  string           `json:"orderSearchStatus"`
	MerchantName       string           `json:"merchantName"`
	VanID              utils.FlexString `json:"vanId"`
	RRN                utils.FlexString `json:"rrn"`
	VanIfscCode        string           `json:"vanIfscCode"`
}

type listResponse struct {
	Body struct {
		ResultInfo struct {
			ResultStatus string           `json:"resultStatus"`
			ResultCode   utils.FlexString `json:"resultCode"`
			ResultMsg    string           `json:"resultMsg"`
		} `json:"resultInfo"`
		Orders []passbookOrder `json:"orders"`
	} `json:"body"`
}

func toOrder(o passbookOrder) Order {
	return Order{
		OrderID:       o.MerchantOrderID.String(),
		TxnID:         o.TxnID.String(),
		Amount:        o.Amount.String(),
		PayMode:       o.PayMode,
		CreatedTime:   o.OrderCreatedTime,
		CompletedTime: o.OrderCompletedTime,
		Status:        o.OrderSearchStatus,
		MerchantName:  o.MerchantName,
		VanID:         o.VanID.String(),
		RRN:           o.RRN.String(),
		VanIfscCode:   o.VanIfscCode,
	}
}

// NormalizeList projects one passbook page. pageNumber is echoed in the
// footer since the gateway does not return it.
func NormalizeList(raw []byte, pageNumber int) result.Result {
	var resp listResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return result.Failuref(result.KindProtocol, "decode order list response: %v", err)
	}
	info := resp.Body.ResultInfo
	if info.ResultStatus == "" {
		return result.Failure(result.KindProtocol, "order list response has no body.resultInfo.resultStatus")
	}
	if info.ResultStatus != "SUCCESS" {
		msg := info.ResultMsg
		if msg == "" {
			msg = "Unknown error"
		}
		if info.ResultCode != "" {
			msg = fmt.Sprintf("%s (code %s)", msg, info.ResultCode)
		}
		return result.Failure(result.KindGatewayRejected, msg)
	}
	if len(resp.Body.Orders) == 0 {
		return result.Empty("No orders found for the given criteria.")
	}

	records := make([]result.Record, 0, len(resp.Body.Orders))
	for _, o := range resp.Body.Orders {
		records = append(records, toOrder(o))
	}
	return result.Success("Order List:", records...).WithFooter(
		result.Field{Label: "Page", Value: strconv.Itoa(pageNumber)},
		result.Field{Label: "Total Records", Value: strconv.Itoa(len(records))},
	)
}
