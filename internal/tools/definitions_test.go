package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 7)

	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{
		"create_payment_link",
		"fetch_payment_links",
		"fetch_transactions_for_link",
		"initiate_refund",
		"check_refund_status",
		"fetch_refund_list",
		"fetch_order_list",
	}, names)
}

func TestDefinition_InputSchema(t *testing.T) {
	def, ok := Lookup(ToolFetchRefundList)
	require.True(t, ok)

	schema := def.InputSchema()
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["required"])

	props := schema["properties"].(map[string]any)
	assert.Equal(t, true, props["is_sort"].(map[string]any)["default"])
	assert.Equal(t, "7", props["time_range"].(map[string]any)["default"])
	assert.NotContains(t, props["start_date"].(map[string]any), "default")

	refundDef, _ := Lookup(ToolInitiateRefund)
	assert.Equal(t, []string{"order_id", "refund_amount", "refund_reference_id", "txn_id"}, refundDef.InputSchema()["required"])

	_, ok = Lookup("drop_tables")
	assert.False(t, ok)
}
