package refund

import (
	"strings"
	"testing"

	"paytm-mcp/internal/checksum"
	"paytm-mcp/internal/config"
	"paytm-mcp/internal/daterange"
	"paytm-mcp/internal/gateway"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = config.Credentials{MerchantID: "MID123", SigningSecret: "secret"}

var fixedSigner = checksum.SignerFunc(func(body []byte, secret string) (string, error) {
	return "sig", nil
})

func TestBuildApply(t *testing.T) {
	valid := ApplyParams{OrderID: "ORD1", RefID: "REF1", TxnID: "TXN1", Amount: decimal.NewFromInt(100)}

	t.Run("TwoDecimalAmount", func(t *testing.T) {
		env, err := BuildApply(testCreds, fixedSigner, valid)
		require.NoError(t, err)
		assert.Empty(t, env.Head.TokenType)
		assert.Empty(t, env.Head.ChannelID)
		assert.Equal(t, "sig", env.Head.Signature)
		assert.JSONEq(t, `{"mid":"MID123","txnType":"REFUND","orderId":"ORD1","txnId":"TXN1","refId":"REF1","refundAmount":"100.00"}`, string(env.Body))
	})

	t.Run("RoundsToTwoDecimals", func(t *testing.T) {
		p := valid
		p.Amount = decimal.RequireFromString("10.5")
		env, err := BuildApply(testCreds, fixedSigner, p)
		require.NoError(t, err)
		assert.Contains(t, string(env.Body), `"refundAmount":"10.50"`)
	})

	tests := []struct {
		name    string
		mutate  func(p *ApplyParams)
		wantErr error
	}{
		{"MissingOrder", func(p *ApplyParams) { p.OrderID = " " }, ErrOrderIDRequired},
		{"MissingTxn", func(p *ApplyParams) { p.TxnID = "" }, ErrTxnIDRequired},
		{"MissingRef", func(p *ApplyParams) { p.RefID = "" }, ErrRefIDRequired},
		{"RefTooLong", func(p *ApplyParams) { p.RefID = strings.Repeat("r", 51) }, ErrRefIDTooLong},
		{"ZeroAmount", func(p *ApplyParams) { p.Amount = decimal.Zero }, ErrInvalidAmount},
		{"NegativeAmount", func(p *ApplyParams) { p.Amount = decimal.NewFromInt(-5) }, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			_, err := BuildApply(testCreds, fixedSigner, p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRefID(t *testing.T) {
	assert.NoError(t, ValidateRefID(strings.Repeat("r", 50)))
	assert.ErrorIs(t, ValidateRefID(strings.Repeat("r", 51)), ErrRefIDTooLong)
	assert.ErrorIs(t, ValidateRefID("  "), ErrRefIDRequired)
}

func TestBuildStatus(t *testing.T) {
	env, err := BuildStatus(testCreds, fixedSigner, StatusParams{OrderID: "ORD1", RefID: "REF1"})
	require.NoError(t, err)
	assert.Empty(t, env.Head.TokenType)
	assert.JSONEq(t, `{"mid":"MID123","orderId":"ORD1","refId":"REF1"}`, string(env.Body))

	_, err = BuildStatus(testCreds, fixedSigner, StatusParams{RefID: "REF1"})
	assert.ErrorIs(t, err, ErrOrderIDRequired)
}

func TestBuildList(t *testing.T) {
	rg := daterange.Range{From: "2024-01-08T10:00:00+05:30", To: "2024-01-15T10:00:00+05:30"}

	env, err := BuildList(testCreds, fixedSigner, ListParams{Range: rg, IsSort: false, PageNum: 2, PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, gateway.TokenChecksum, env.Head.TokenType)
	assert.JSONEq(t, `{"mid":"MID123","isSort":"false","startDate":"2024-01-08T10:00:00+05:30","endDate":"2024-01-15T10:00:00+05:30","pageNum":"2","pageSize":"50"}`, string(env.Body))

	_, err = BuildList(testCreds, fixedSigner, ListParams{PageNum: 1, PageSize: 50})
	assert.ErrorIs(t, err, ErrDateRangeRequired)

	_, err = BuildList(testCreds, fixedSigner, ListParams{Range: rg, PageNum: 0, PageSize: 50})
	assert.ErrorIs(t, err, ErrInvalidPage)
}
