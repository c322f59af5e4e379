package payment

import (
	"encoding/json"
	"strings"

	"paytm-mcp/internal/checksum"
	"paytm-mcp/internal/config"
	"paytm-mcp/internal/gateway"
)

const (
	PathCreateLink        = "/link/create"
	PathFetchLinks        = "/link/fetch"
	PathFetchTransactions = "/link/fetchTransaction"
)

type customerContact struct {
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail,omitempty"`
	CustomerMobile string `json:"customerMobile,omitempty"`
}

type createLinkBody struct {
	Mid                string          `json:"mid"`
	LinkType           string          `json:"linkType"`
	LinkDescription    string          `json:"linkDescription"`
	LinkName           string          `json:"linkName"`
	SendSms            bool            `json:"sendSms"`
	SendEmail          bool            `json:"sendEmail"`
	MaxPaymentsAllowed int             `json:"maxPaymentsAllowed"`
	CustomerContact    customerContact `json:"customerContact"`
	Amount             json.Number     `json:"amount,omitempty"`
}

type fetchLinksBody struct {
	Mid string `json:"mid"`
}

type fetchTransactionsBody struct {
	Mid          string `json:"mid"`
	LinkID       string `json:"linkId"`
	FetchAllTxns bool   `json:"fetchAllTxns"`
}

// BuildCreateLink assembles the signed /link/create envelope. A link with an
// amount is FIXED, otherwise GENERIC and the amount key is left out.
func BuildCreateLink(creds config.Credentials, signer checksum.Signer, p CreateLinkParams) (gateway.Envelope, error) {
	recipient := strings.TrimSpace(p.RecipientName)
	purpose := strings.TrimSpace(p.Purpose)
	switch {
	case recipient == "":
		return gateway.Envelope{}, ErrRecipientRequired
	case purpose == "":
		return gateway.Envelope{}, ErrPurposeRequired
	case p.CustomerEmail == nil && p.CustomerMobile == nil:
		return gateway.Envelope{}, ErrContactRequired
	}

	body := createLinkBody{
		Mid:                creds.MerchantID,
		LinkType:           LinkTypeGeneric,
		LinkDescription:    "Payment for " + purpose,
		LinkName:           strings.ReplaceAll(purpose, " ", "_") + "_" + strings.ReplaceAll(recipient, " ", "_"),
		SendSms:            p.CustomerMobile != nil,
		SendEmail:          p.CustomerEmail != nil,
		MaxPaymentsAllowed: 1,
		CustomerContact: customerContact{
			CustomerName: recipient,
		},
	}
	if p.CustomerEmail != nil {
		body.CustomerContact.CustomerEmail = *p.CustomerEmail
	}
	if p.CustomerMobile != nil {
		body.CustomerContact.CustomerMobile = *p.CustomerMobile
	}
	if p.Amount != nil {
		if !p.Amount.IsPositive() {
			return gateway.Envelope{}, ErrInvalidAmount
		}
		body.LinkType = LinkTypeFixed
		body.Amount = json.Number(p.Amount.StringFixed(2))
	}

	return gateway.Seal(signer, creds.SigningSecret, gateway.HeadSpec{TokenType: gateway.TokenAES}, body)
}

func BuildFetchLinks(creds config.Credentials, signer checksum.Signer) (gateway.Envelope, error) {
	return gateway.Seal(signer, creds.SigningSecret,
		gateway.HeadSpec{TokenType: gateway.TokenAES, ChannelID: gateway.ChannelWeb},
		fetchLinksBody{Mid: creds.MerchantID},
	)
}

func BuildFetchTransactions(creds config.Credentials, signer checksum.Signer, linkID string) (gateway.Envelope, error) {
	linkID = strings.TrimSpace(linkID)
	if linkID == "" {
		return gateway.Envelope{}, ErrLinkIDRequired
	}
	return gateway.Seal(signer, creds.SigningSecret,
		gateway.HeadSpec{TokenType: gateway.TokenAES},
		fetchTransactionsBody{Mid: creds.MerchantID, LinkID: linkID, FetchAllTxns: false},
	)
}
