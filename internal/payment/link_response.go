package payment

import (
	"encoding/json"
	"fmt"

	"paytm-mcp/internal/result"
	"paytm-mcp/internal/utils"
)

// The link API family nests its verdict under body.resultInfo and spells the
// message "resultMessage".
const linkSuccess = "SUCCESS"

type linkResultInfo struct {
	ResultStatus  string           `json:"resultStatus"`
	ResultCode    utils.FlexString `json:"resultCode"`
	ResultMessage string           `json:"resultMessage"`
}

func (ri linkResultInfo) rejection() result.Result {
	msg := ri.ResultMessage
	if msg == "" {
		msg = "Unknown error"
	}
	if ri.ResultCode != "" {
		msg = fmt.Sprintf("%s (code %s)", msg, ri.ResultCode)
	}
	return result.Failure(result.KindGatewayRejected, msg)
}

type createLinkResponse struct {
	Body struct {
		ResultInfo linkResultInfo   `json:"resultInfo"`
		LinkID     utils.FlexString `json:"linkId"`
		ShortURL   string           `json:"shortUrl"`
	} `json:"body"`
}

type fetchLinksResponse struct {
	Body struct {
		ResultInfo linkResultInfo `json:"resultInfo"`
		Links      []struct {
			LinkID      utils.FlexString `json:"linkId"`
			LinkName    string           `json:"linkName"`
			ShortURL    string           `json:"shortUrl"`
			Status      string           `json:"status"`
			CreatedDate string           `json:"createdDate"`
			ExpiryDate  string           `json:"expiryDate"`
		} `json:"links"`
	} `json:"body"`
}

type fetchTransactionsResponse struct {
	Body struct {
		ResultInfo linkResultInfo `json:"resultInfo"`
		Orders     []struct {
			TxnID               utils.FlexString `json:"txnId"`
			OrderID             utils.FlexString `json:"orderId"`
			TxnAmount           utils.FlexString `json:"txnAmount"`
			OrderStatus         string           `json:"orderStatus"`
			OrderCompletedTime  string           `json:"orderCompletedTime"`
			CustomerPhoneNumber utils.FlexString `json:"customerPhoneNumber"`
			CustomerEmail       string           `json:"customerEmail"`
		} `json:"orders"`
	} `json:"body"`
}

func decodeLink(raw []byte, out any, status func() string) *result.Result {
	if err := json.Unmarshal(raw, out); err != nil {
		r := result.Failuref(result.KindProtocol, "decode link response: %v", err)
		return &r
	}
	if status() == "" {
		r := result.Failure(result.KindProtocol, "link response has no body.resultInfo.resultStatus")
		return &r
	}
	return nil
}

// NormalizeCreateLink projects a /link/create response.
func NormalizeCreateLink(raw []byte) result.Result {
	var resp createLinkResponse
	if r := decodeLink(raw, &resp, func() string { return resp.Body.ResultInfo.ResultStatus }); r != nil {
		return *r
	}
	if resp.Body.ResultInfo.ResultStatus != linkSuccess {
		return resp.Body.ResultInfo.rejection()
	}
	return result.Success("Payment link created:", CreatedLink{
		LinkID:   resp.Body.LinkID.String(),
		ShortURL: resp.Body.ShortURL,
	})
}

// NormalizeFetchLinks projects a /link/fetch response. Links without a status
// are reported as PENDING.
func NormalizeFetchLinks(raw []byte) result.Result {
	var resp fetchLinksResponse
	if r := decodeLink(raw, &resp, func() string { return resp.Body.ResultInfo.ResultStatus }); r != nil {
		return *r
	}
	if resp.Body.ResultInfo.ResultStatus != linkSuccess {
		return resp.Body.ResultInfo.rejection()
	}
	if len(resp.Body.Links) == 0 {
		return result.Empty("No payment links found.")
	}

	records := make([]result.Record, 0, len(resp.Body.Links))
	for _, l := range resp.Body.Links {
		status := l.Status
		if status == "" {
			status = "PENDING"
		}
		records = append(records, PaymentLink{
			LinkID:      l.LinkID.String(),
			LinkName:    l.LinkName,
			ShortURL:    l.ShortURL,
			Status:      status,
			CreatedDate: l.CreatedDate,
			ExpiryDate:  l.ExpiryDate,
		})
	}
	return result.Success("Available Payment Links:", records...)
}

// NormalizeFetchTransactions projects a /link/fetchTransaction response.
func NormalizeFetchTransactions(raw []byte, linkID string) result.Result {
	var resp fetchTransactionsResponse
	if r := decodeLink(raw, &resp, func() string { return resp.Body.ResultInfo.ResultStatus }); r != nil {
		return *r
	}
	if resp.Body.ResultInfo.ResultStatus != linkSuccess {
		return resp.Body.ResultInfo.rejection()
	}
	if len(resp.Body.Orders) == 0 {
		return result.Empty(fmt.Sprintf("No transactions found for link ID %s.", linkID))
	}

	records := make([]result.Record, 0, len(resp.Body.Orders))
	for _, o := range resp.Body.Orders {
		records = append(records, Transaction{
			TxnID:         o.TxnID.String(),
			OrderID:       o.OrderID.String(),
			Amount:        o.TxnAmount.String(),
			Status:        o.OrderStatus,
			CompletedTime: o.OrderCompletedTime,
			CustomerPhone: o.CustomerPhoneNumber.String(),
			CustomerEmail: o.CustomerEmail,
		})
	}
	return result.Success(fmt.Sprintf("Transactions for Link ID %s:", linkID), records...)
}
