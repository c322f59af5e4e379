package refund

import (
	"context"

	"paytm-mcp/internal/checksum"
	"paytm-mcp/internal/config"
	"paytm-mcp/internal/gateway"
	"paytm-mcp/internal/logger"
	"paytm-mcp/internal/result"

	"go.uber.org/zap"
)

// Service covers refund initiation, status and listing.
type Service interface {
	Apply(ctx context.Context, p ApplyParams) (result.Result, error)
	Status(ctx context.Context, p StatusParams) (result.Result, error)
	List(ctx context.Context, p ListParams) (result.Result, error)
}

type service struct {
	creds       config.Credentials
	signer      checksum.Signer
	sender      gateway.Sender
	policy      gateway.RetryPolicy
	applyPolicy gateway.RetryPolicy
}

// NewService wires the refund operations. Initiation is sent once unless
// retryApply is set: a retried refund that already reached the gateway is
// only deduplicated by its refId.
func NewService(creds config.Credentials, signer checksum.Signer, sender gateway.Sender, policy gateway.RetryPolicy, retryApply bool) Service {
	applyPolicy := gateway.NoRetry()
	if retryApply {
		applyPolicy = policy
	}
	return &service{
		creds:       creds,
		signer:      signer,
		sender:      sender,
		policy:      policy,
		applyPolicy: applyPolicy,
	}
}

func (s *service) Apply(ctx context.Context, p ApplyParams) (result.Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Apply"),
		zap.String("order_id", p.OrderID),
		zap.String("ref_id", p.RefID),
	)

	env, err := BuildApply(s.creds, s.signer, p)
	if err != nil {
		log.Warn("failed to build refund request", zap.Error(err))
		return result.Result{}, err
	}

	raw, err := s.sender.Send(ctx, PathApply, env, s.applyPolicy)
	if err != nil {
		log.Error("refund request did not complete", zap.Error(err))
		return result.Result{}, err
	}

	res := NormalizeApply(raw)
	log.Info("Apply finished", zap.String("status", string(res.Status)), zap.String("kind", string(res.Kind)))
	return res, nil
}

func (s *service) Status(ctx context.Context, p StatusParams) (result.Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Status"),
		zap.String("order_id", p.OrderID),
	)

	env, err := BuildStatus(s.creds, s.signer, p)
	if err != nil {
		log.Warn("failed to build refund status request", zap.Error(err))
		return result.Result{}, err
	}

	raw, err := s.sender.Send(ctx, PathStatus, env, s.policy)
	if err != nil {
		return result.Result{}, err
	}

	res := NormalizeStatus(raw)
	log.Info("Status finished", zap.String("status", string(res.Status)))
	return res, nil
}

func (s *service) List(ctx context.Context, p ListParams) (result.Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
		zap.String("start_date", p.Range.From),
		zap.String("end_date", p.Range.To),
		zap.Int("page_num", p.PageNum),
	)

	env, err := BuildList(s.creds, s.signer, p)
	if err != nil {
		log.Warn("failed to build refund list request", zap.Error(err))
		return result.Result{}, err
	}

	raw, err := s.sender.Send(ctx, PathList, env, s.policy)
	if err != nil {
		return result.Result{}, err
	}

	res := NormalizeList(raw)
	log.Info("List finished", zap.String("status", string(res.Status)), zap.Int("count", len(res.Records)))
	return res, nil
}
