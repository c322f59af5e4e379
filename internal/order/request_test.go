package order

import (
	"testing"

	"paytm-mcp/internal/checksum"
	"paytm-mcp/internal/config"
	"paytm-mcp/internal/daterange"
	"paytm-mcp/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = config.Credentials{MerchantID: "MID123", SigningSecret: "secret"}

var fixedSigner = checksum.SignerFunc(func(body []byte, secret string) (string, error) {
	return "sig", nil
})

var testRange = daterange.Range{From: "2024-01-08T10:00:00+05:30", To: "2024-01-15T10:00:00+05:30"}

func TestBuildList(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		env, err := BuildList(testCreds, fixedSigner, ListParams{
			Range:        testRange,
			SearchType:   DefaultSearchType,
			SearchStatus: DefaultSearchStatus,
			PageNumber:   1,
			PageSize:     DefaultPageSize,
			IsSort:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, gateway.TokenChecksum, env.Head.TokenType)
		assert.JSONEq(t, `{
			"mid":"MID123",
			"fromDate":"2024-01-08T10:00:00+05:30",
			"toDate":"2024-01-15T10:00:00+05:30",
			"orderSearchType":"TRANSACTION",
			"orderSearchStatus":"SUCCESS",
			"pageNumber":"1",
			"pageSize":"50",
			"isSort":true
		}`, string(env.Body))
	})

	t.Run("StatusFilterOmitted", func(t *testing.T) {
		env, err := BuildList(testCreds, fixedSigner, ListParams{
			Range: testRange, SearchType: "REFUND", PageNumber: 3, PageSize: 10,
		})
		require.NoError(t, err)
		assert.NotContains(t, string(env.Body), "orderSearchStatus")
		assert.Contains(t, string(env.Body), `"isSort":false`)
		assert.Contains(t, string(env.Body), `"pageNumber":"3"`)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := BuildList(testCreds, fixedSigner, ListParams{SearchType: "TRANSACTION", PageNumber: 1, PageSize: 1})
		assert.ErrorIs(t, err, ErrDateRangeRequired)

		_, err = BuildList(testCreds, fixedSigner, ListParams{Range: testRange, PageNumber: 1, PageSize: 1})
		assert.ErrorIs(t, err, ErrSearchTypeRequired)

		_, err = BuildList(testCreds, fixedSigner, ListParams{Range: testRange, SearchType: "TRANSACTION", PageNumber: 1})
		assert.ErrorIs(t, err, ErrInvalidPage)
	})
}
