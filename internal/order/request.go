package order

import (
	"strconv"
	"strings"

	"paytm-mcp/internal/checksum"
	"paytm-mcp/internal/config"
	"paytm-mcp/internal/gateway"
)

const PathList = "/merchant-passbook/search/list/order/v2"

// pageNumber and pageSize travel as strings, isSort as a JSON bool.
type listBody struct {
	Mid               string `json:"mid"`
	FromDate          string `json:"fromDate"`
	ToDate            string `json:"toDate"`
	OrderSearchType   string `json:"orderSearchType"`
	OrderSearchStatus string `json:"orderSearchStatus,omitempty"`
	PageNumber        string `json:"pageNumber"`
	PageSize          string `json:"pageSize"`
	IsSort            bool   `json:"isSort"`
}

func BuildList(creds config.Credentials, signer checksum.Signer, p ListParams) (gateway.Envelope, error) {
	if p.Range.From == "" || p.Range.To == "" {
		return gateway.Envelope{}, ErrDateRangeRequired
	}
	searchType := strings.TrimSpace(p.SearchType)
	if searchType == "" {
		return gateway.Envelope{}, ErrSearchTypeRequired
	}
	if p.PageNumber < 1 || p.PageSize < 1 {
		return gateway.Envelope{}, ErrInvalidPage
	}

	return gateway.Seal(signer, creds.SigningSecret, gateway.HeadSpec{TokenType: gateway.TokenChecksum}, listBody{
		Mid:               creds.MerchantID,
		FromDate:          p.Range.From,
		ToDate:            p.Range.To,
		OrderSearchType:   searchType,
		OrderSearchStatus: strings.TrimSpace(p.SearchStatus),
		PageNumber:        strconv.Itoa(p.PageNumber),
		PageSize:          strconv.Itoa(p.PageSize),
		IsSort:            p.IsSort,
	})
}
