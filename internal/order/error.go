package order

import "errors"

var (
	ErrDateRangeRequired  = errors.New("from_date and to_date are required")
	ErrSearchTypeRequired = errors.New("order_search_type is required")
	ErrInvalidPage        = errors.New("page_number and page_size must be positive")
)
