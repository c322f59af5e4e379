package tools

import "sort"

// Param describes one tool argument.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Default     any
}

// Definition is the contract of a tool as advertised to agents.
type Definition struct {
	Name        string
	Description string
	Params      []Param
}

// InputSchema renders the params as a JSON schema object.
func (d Definition) InputSchema() map[string]any {
	props := make(map[string]any, len(d.Params))
	required := []string{}
	for _, p := range d.Params {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	sort.Strings(required)
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

const (
	ToolCreatePaymentLink = "create_payment_link"
	ToolFetchPaymentLinks = "fetch_payment_links"
	ToolFetchTransactions = "fetch_transactions_for_link"
	ToolInitiateRefund    = "initiate_refund"
	ToolCheckRefundStatus = "check_refund_status"
	ToolFetchRefundList   = "fetch_refund_list"
	ToolFetchOrderList    = "fetch_order_list"
)

const (
	dateFormatHint   = " in ISO format (YYYY-MM-DDTHH:mm:ss+HH:mm); never invent one"
	defaultTimeRange = "7"
	defaultPageSize  = 50
)

var definitions = []Definition{
	{
		Name: ToolCreatePaymentLink,
		Description: "Create a payment link customers can pay through. Either customer_email or customer_mobile " +
			"must be provided; ask the user for them instead of assuming. Without an amount the customer decides how much to pay.",
		Params: []Param{
			{Name: "recipient_name", Type: "string", Description: "Name of the person or entity receiving the payment", Required: true},
			{Name: "purpose", Type: "string", Description: "Reason for the payment", Required: true},
			{Name: "customer_email", Type: "string", Description: "Email address of the customer"},
			{Name: "customer_mobile", Type: "string", Description: "Mobile number of the customer"},
			{Name: "amount", Type: "string", Description: "Fixed amount for the payment"},
		},
	},
	{
		Name:        ToolFetchPaymentLinks,
		Description: "List every payment link the merchant created, active or expired, with id, name, short URL, status and dates.",
	},
	{
		Name:        ToolFetchTransactions,
		Description: "List the transactions made against one payment link.",
		Params: []Param{
			{Name: "link_id", Type: "string", Description: "Identifier of the payment link", Required: true},
		},
	},
	{
		Name: ToolInitiateRefund,
		Description: "Refund a completed transaction, fully or partially. Ask the user for every argument " +
			"before calling; the refund is tracked by refund_reference_id.",
		Params: []Param{
			{Name: "order_id", Type: "string", Description: "Order ID of the original transaction", Required: true},
			{Name: "refund_reference_id", Type: "string", Description: "Unique refund reference ID (max 50 chars)", Required: true},
			{Name: "txn_id", Type: "string", Description: "Paytm transaction ID of the original transaction", Required: true},
			{Name: "refund_amount", Type: "number", Description: "Amount to refund, at most the original transaction amount", Required: true},
		},
	},
	{
		Name:        ToolCheckRefundStatus,
		Description: "Check the status of a previously initiated refund.",
		Params: []Param{
			{Name: "order_id", Type: "string", Description: "Order ID of the original transaction", Required: true},
			{Name: "refund_reference_id", Type: "string", Description: "Refund reference ID used when the refund was initiated", Required: true},
		},
	},
	{
		Name: ToolFetchRefundList,
		Description: "List refunds in a date range of at most 30 days. Without both start_date and end_date " +
			"the last time_range days are used.",
		Params: []Param{
			{Name: "is_sort", Type: "boolean", Description: "Sort by refund date", Default: true},
			{Name: "page_num", Type: "integer", Description: "Page to retrieve", Default: 1},
			{Name: "page_size", Type: "integer", Description: "Refunds per page (max 50)", Default: defaultPageSize},
			{Name: "time_range", Type: "string", Description: "Window size in days", Default: defaultTimeRange},
			{Name: "start_date", Type: "string", Description: "Start date" + dateFormatHint},
			{Name: "end_date", Type: "string", Description: "End date" + dateFormatHint},
		},
	},
	{
		Name: ToolFetchOrderList,
		Description: "List orders in a date range of at most 30 days, filtered by search type and status. " +
			"Without both from_date and to_date the last time_range days are used.",
		Params: []Param{
			{Name: "order_search_type", Type: "string", Description: "Type of order search", Default: "TRANSACTION"},
			{Name: "order_search_status", Type: "string", Description: "Status of orders to search for; empty disables the filter", Default: "SUCCESS"},
			{Name: "page_number", Type: "integer", Description: "Page to retrieve", Default: 1},
			{Name: "page_size", Type: "integer", Description: "Orders per page", Default: defaultPageSize},
			{Name: "from_date", Type: "string", Description: "Start date" + dateFormatHint},
			{Name: "to_date", Type: "string", Description: "End date" + dateFormatHint},
			{Name: "time_range", Type: "string", Description: "Window size in days", Default: defaultTimeRange},
		},
	},
}

// Definitions returns the declared tools in a stable order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds a tool definition by name.
func Lookup(name string) (Definition, bool) {
	for _, d := range definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
