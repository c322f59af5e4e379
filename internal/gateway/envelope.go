package gateway

import (
	"encoding/json"
	"fmt"

	"paytm-mcp/internal/checksum"
)

// Token types the gateway accepts in the envelope head.
const (
	TokenAES      = "AES"
	TokenChecksum = "CHECKSUM"

	ChannelWeb = "WEB"
)

// Head authenticates the envelope. TokenType is omitted by the refund API family.
type Head struct {
	TokenType string `json:"tokenType,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
	Signature string `json:"signature"`
}

// Envelope is the {head, body} wire structure. Body holds the exact bytes
// that were signed.
type Envelope struct {
	Head Head            `json:"head"`
	Body json.RawMessage `json:"body"`
}

// HeadSpec describes the head fields an endpoint expects besides the signature.
type HeadSpec struct {
	TokenType string
	ChannelID string
}

// Seal serializes body once, signs those bytes and attaches the head.
func Seal(signer checksum.Signer, secret string, head HeadSpec, body any) (Envelope, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal body: %w", err)
	}
	sig, err := signer.Sign(raw, secret)
	if err != nil {
		return Envelope{}, fmt.Errorf("sign body: %w", err)
	}
	return Envelope{
		Head: Head{TokenType: head.TokenType, ChannelID: head.ChannelID, Signature: sig},
		Body: raw,
	}, nil
}
