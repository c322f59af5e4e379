package refund

import "errors"

// MaxRefIDLength is the longest refund reference id the gateway accepts.
const MaxRefIDLength = 50

var (
	ErrOrderIDRequired   = errors.New("order_id is required")
	ErrTxnIDRequired     = errors.New("txn_id is required")
	ErrRefIDRequired     = errors.New("refund_reference_id is required")
	ErrRefIDTooLong      = errors.New("refund_reference_id must be at most 50 characters")
	ErrInvalidAmount     = errors.New("refund_amount must be greater than zero")
	ErrDateRangeRequired = errors.New("start_date and end_date are required")
	ErrInvalidPage       = errors.New("page_num and page_size must be positive")
)
