// Package tools exposes the gateway operations as agent-callable tools. Every
// call ends in a result.Result; errors and panics never escape Call.
package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paytm-mcp/internal/daterange"
	"paytm-mcp/internal/gateway"
	"paytm-mcp/internal/logger"
	"paytm-mcp/internal/metrics"
	"paytm-mcp/internal/order"
	"paytm-mcp/internal/payment"
	"paytm-mcp/internal/refund"
	"paytm-mcp/internal/result"

	"go.uber.org/zap"
)

type handlerFunc func(ctx context.Context, args Args) (result.Result, error)

// Facade dispatches tool calls to the payment, refund and order services.
type Facade struct {
	payments payment.Service
	refunds  refund.Service
	orders   order.Service
	resolver *daterange.Resolver
	handlers map[string]handlerFunc
}

func NewFacade(payments payment.Service, refunds refund.Service, orders order.Service, resolver *daterange.Resolver) *Facade {
	if resolver == nil {
		resolver = daterange.NewResolver()
	}
	f := &Facade{
		payments: payments,
		refunds:  refunds,
		orders:   orders,
		resolver: resolver,
	}
	f.handlers = map[string]handlerFunc{
		ToolCreatePaymentLink: f.createPaymentLink,
		ToolFetchPaymentLinks: f.fetchPaymentLinks,
		ToolFetchTransactions: f.fetchTransactions,
		ToolInitiateRefund:    f.initiateRefund,
		ToolCheckRefundStatus: f.checkRefundStatus,
		ToolFetchRefundList:   f.fetchRefundList,
		ToolFetchOrderList:    f.fetchOrderList,
	}
	return f
}

// Has reports whether name is a known tool.
func (f *Facade) Has(name string) bool {
	_, ok := f.handlers[name]
	return ok
}

// Call runs one tool.
func (f *Facade) Call(ctx context.Context, name string, args Args) (res result.Result) {
	ctx = logger.WithTool(ctx, name)
	log := logger.FromCtx(ctx).With(zap.String("layer", "facade"))
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("tool call panicked", zap.Any("panic", rec), zap.Stack("stack"))
			res = result.Failuref(result.KindInternal, "%s failed unexpectedly", name)
		}
		metrics.IncToolCall(name, outcome(res))
		log.Info("tool call finished",
			zap.String("status", string(res.Status)),
			zap.String("kind", string(res.Kind)),
			zap.Duration("duration", time.Since(start)),
		)
	}()

	h, ok := f.handlers[name]
	if !ok {
		return result.Failuref(result.KindInternal, "unknown tool %q", name)
	}
	if args == nil {
		args = Args{}
	}

	res, err := h(ctx, args)
	if err != nil {
		return classify(log, err)
	}
	return res
}

func outcome(r result.Result) string {
	if r.IsFailure() {
		return string(r.Kind)
	}
	return string(r.Status)
}

var clarifications = []error{
	payment.ErrRecipientRequired,
	payment.ErrPurposeRequired,
	payment.ErrContactRequired,
	payment.ErrLinkIDRequired,
	payment.ErrInvalidAmount,
	refund.ErrOrderIDRequired,
	refund.ErrTxnIDRequired,
	refund.ErrRefIDRequired,
	refund.ErrRefIDTooLong,
	refund.ErrInvalidAmount,
	refund.ErrDateRangeRequired,
	refund.ErrInvalidPage,
	order.ErrDateRangeRequired,
	order.ErrSearchTypeRequired,
	order.ErrInvalidPage,
	daterange.ErrInvalidDays,
}

// classify turns a service error into the failure the caller sees.
func classify(log *zap.Logger, err error) result.Result {
	var argErr *ArgError
	if errors.As(err, &argErr) {
		return result.Clarify(argErr.Error())
	}
	for _, target := range clarifications {
		if errors.Is(err, target) {
			return result.Clarify(err.Error())
		}
	}

	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		if gwErr.Kind == gateway.KindProtocol {
			log.Warn("gateway response unusable", zap.Error(err))
			return result.Failure(result.KindProtocol, err.Error())
		}
		log.Warn("gateway unreachable", zap.Error(err))
		return result.Failure(result.KindTransport, err.Error())
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return result.Failure(result.KindTransport, err.Error())
	}

	log.Error("tool call failed", zap.Error(err))
	return result.Failure(result.KindInternal, err.Error())
}

func (f *Facade) createPaymentLink(ctx context.Context, args Args) (result.Result, error) {
	req, err := args.Require("recipient_name", "purpose")
	if err != nil {
		return result.Result{}, err
	}
	email := args.String("customer_email")
	mobile := args.String("customer_mobile")
	if email == nil && mobile == nil {
		return result.Clarify("either customer_email or customer_mobile is required; ask the user for one"), nil
	}
	amount, err := args.Decimal("amount")
	if err != nil {
		return result.Result{}, err
	}

	return f.payments.CreateLink(ctx, payment.CreateLinkParams{
		RecipientName:  req[0],
		Purpose:        req[1],
		CustomerEmail:  email,
		CustomerMobile: mobile,
		Amount:         amount,
	})
}

func (f *Facade) fetchPaymentLinks(ctx context.Context, _ Args) (result.Result, error) {
	return f.payments.FetchLinks(ctx)
}

func (f *Facade) fetchTransactions(ctx context.Context, args Args) (result.Result, error) {
	req, err := args.Require("link_id")
	if err != nil {
		return result.Result{}, err
	}
	return f.payments.FetchTransactions(ctx, req[0])
}

func (f *Facade) initiateRefund(ctx context.Context, args Args) (result.Result, error) {
	req, err := args.Require("order_id", "refund_reference_id", "txn_id", "refund_amount")
	if err != nil {
		return result.Result{}, err
	}
	if err := refund.ValidateRefID(req[1]); err != nil {
		return result.Result{}, err
	}
	amount, err := args.Decimal("refund_amount")
	if err != nil {
		return result.Result{}, err
	}

	return f.refunds.Apply(ctx, refund.ApplyParams{
		OrderID: req[0],
		RefID:   req[1],
		TxnID:   req[2],
		Amount:  *amount,
	})
}

func (f *Facade) checkRefundStatus(ctx context.Context, args Args) (result.Result, error) {
	req, err := args.Require("order_id", "refund_reference_id")
	if err != nil {
		return result.Result{}, err
	}
	return f.refunds.Status(ctx, refund.StatusParams{OrderID: req[0], RefID: req[1]})
}

func (f *Facade) fetchRefundList(ctx context.Context, args Args) (result.Result, error) {
	isSort, err := args.Bool("is_sort", true)
	if err != nil {
		return result.Result{}, err
	}
	pageNum, err := args.Int("page_num", 1)
	if err != nil {
		return result.Result{}, err
	}
	pageSize, err := args.Int("page_size", defaultPageSize)
	if err != nil {
		return result.Result{}, err
	}
	rg, err := f.window(ctx, args, "start_date", "end_date")
	if err != nil {
		return result.Result{}, err
	}

	return f.refunds.List(ctx, refund.ListParams{
		Range:    rg,
		IsSort:   isSort,
		PageNum:  pageNum,
		PageSize: pageSize,
	})
}

func (f *Facade) fetchOrderList(ctx context.Context, args Args) (result.Result, error) {
	searchType := order.DefaultSearchType
	if v := args.String("order_search_type"); v != nil {
		searchType = *v
	}
	// An explicit empty status drops the filter; only a missing key gets the default.
	searchStatus := order.DefaultSearchStatus
	if args.Has("order_search_status") {
		searchStatus = ""
		if v := args.String("order_search_status"); v != nil {
			searchStatus = *v
		}
	}
	pageNumber, err := args.Int("page_number", 1)
	if err != nil {
		return result.Result{}, err
	}
	pageSize, err := args.Int("page_size", order.DefaultPageSize)
	if err != nil {
		return result.Result{}, err
	}
	rg, err := f.window(ctx, args, "from_date", "to_date")
	if err != nil {
		return result.Result{}, err
	}

	return f.orders.List(ctx, order.ListParams{
		Range:        rg,
		SearchType:   searchType,
		SearchStatus: searchStatus,
		PageNumber:   pageNumber,
		PageSize:     pageSize,
		IsSort:       true,
	})
}

// window resolves the date range of a list tool. Spans over the advisory
// maximum are only logged; the gateway has the final say.
func (f *Facade) window(ctx context.Context, args Args, fromKey, toKey string) (daterange.Range, error) {
	var from, to string
	if v := args.String(fromKey); v != nil {
		from = *v
	}
	if v := args.String(toKey); v != nil {
		to = *v
	}
	days := defaultTimeRange
	if v := args.String("time_range"); v != nil {
		days = *v
	}

	rg, err := f.resolver.Resolve(from, to, days)
	if err != nil {
		return daterange.Range{}, fmt.Errorf("time_range: %w", err)
	}
	if rg.SpanExceeds(daterange.AdvisoryMaxDays) {
		logger.FromCtx(ctx).Warn("date range wider than advisory maximum",
			zap.String("from", rg.From),
			zap.String("to", rg.To),
			zap.Int("max_days", daterange.AdvisoryMaxDays),
		)
	}
	return rg, nil
}
