package payment

import "errors"

var (
	ErrRecipientRequired = errors.New("recipient_name is required")
	ErrPurposeRequired   = errors.New("purpose is required")
	ErrContactRequired   = errors.New("customer_email or customer_mobile is required")
	ErrLinkIDRequired    = errors.New("link_id is required")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
)
