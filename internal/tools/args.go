package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"paytm-mcp/internal/utils"
)

// ArgError is an argument the caller has to supply or correct.
type ArgError struct {
	Key    string
	Reason string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s %s", e.Key, e.Reason)
}

// Args are the decoded arguments of one tool call. Numbers arrive as
// json.Number when the transport decodes with UseNumber, float64 otherwise.
type Args map[string]any

// Has reports whether key was sent at all, even as a "no value" sentinel.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String returns the textual value of key, or nil when it is absent, empty or
// "null".
func (a Args) String(key string) *string {
	switch v := a[key].(type) {
	case nil:
		return nil
	case string:
		return utils.Optional(v)
	case json.Number:
		return utils.Optional(v.String())
	case float64:
		return utils.Optional(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		return utils.Optional(strconv.FormatBool(v))
	default:
		return utils.Optional(fmt.Sprint(v))
	}
}

// Require returns the values of keys in order, failing on the first one missing.
func (a Args) Require(keys ...string) ([]string, error) {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		v := a.String(k)
		if v == nil {
			return nil, &ArgError{Key: k, Reason: "is required"}
		}
		out = append(out, *v)
	}
	return out, nil
}

func (a Args) Int(key string, def int) (int, error) {
	s := a.String(key)
	if s == nil {
		return def, nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return 0, &ArgError{Key: key, Reason: "must be a whole number"}
	}
	return n, nil
}

func (a Args) Bool(key string, def bool) (bool, error) {
	if b, ok := a[key].(bool); ok {
		return b, nil
	}
	s := a.String(key)
	if s == nil {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(*s))
	if err != nil {
		return false, &ArgError{Key: key, Reason: "must be true or false"}
	}
	return b, nil
}

// Decimal parses a monetary amount; absent values return nil.
func (a Args) Decimal(key string) (*decimal.Decimal, error) {
	s := a.String(key)
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, &ArgError{Key: key, Reason: "must be a number"}
	}
	if !d.IsPositive() {
		return nil, &ArgError{Key: key, Reason: "must be greater than zero"}
	}
	return &d, nil
}
