// Package daterange resolves the bounded [from, to) windows the passbook
// endpoints require.
package daterange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the instant format the gateway expects; values are always
// rendered in IST so the offset reads +05:30.
const Layout = "2006-01-02T15:04:05-07:00"

// AdvisoryMaxDays is the span the gateway documents for list endpoints. It is
// not enforced here.
const AdvisoryMaxDays = 30

var IST = time.FixedZone("IST", 5*60*60+30*60)

var (
	ErrInvalidDays = errors.New("time range must be a non-negative whole number of days")
)

// Range is a resolved window. Explicit bounds are carried verbatim.
type Range struct {
	From     string
	To       string
	Explicit bool
}

// Resolver computes relative windows against Now.
type Resolver struct {
	Now func() time.Time
}

func NewResolver() *Resolver {
	return &Resolver{Now: time.Now}
}

// Resolve returns from/to unchanged when both are given. Otherwise it ends the
// window now (IST) and starts it relativeDays earlier; it never mixes a single
// explicit bound with a computed one.
func (r *Resolver) Resolve(from, to, relativeDays string) (Range, error) {
	if from != "" && to != "" {
		return Range{From: from, To: to, Explicit: true}, nil
	}

	days, err := strconv.Atoi(strings.TrimSpace(relativeDays))
	if err != nil || days < 0 {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidDays, relativeDays)
	}

	now := time.Now
	if r != nil && r.Now != nil {
		now = r.Now
	}
	end := now().In(IST)
	start := end.AddDate(0, 0, -days)
	return Range{From: start.Format(Layout), To: end.Format(Layout)}, nil
}

// Span returns to-from. ok is false when either bound does not parse.
func (rg Range) Span() (time.Duration, bool) {
	from, err := parse(rg.From)
	if err != nil {
		return 0, false
	}
	to, err := parse(rg.To)
	if err != nil {
		return 0, false
	}
	return to.Sub(from), true
}

// SpanExceeds reports whether the window is parseable and wider than days.
func (rg Range) SpanExceeds(days int) bool {
	span, ok := rg.Span()
	return ok && span > time.Duration(days)*24*time.Hour
}

func parse(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
