package order

import (
	"context"

	"paytm-mcp/internal/checksum"
	"paytm-mcp/internal/config"
	"paytm-mcp/internal/gateway"
	"paytm-mcp/internal/logger"
	"paytm-mcp/internal/result"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, p ListParams) (result.Result, error)
}

type service struct {
	creds  config.Credentials
	signer checksum.Signer
	sender gateway.Sender
	policy gateway.RetryPolicy
}

func NewService(creds config.Credentials, signer checksum.Signer, sender gateway.Sender, policy gateway.RetryPolicy) Service {
	return &service{creds: creds, signer: signer, sender: sender, policy: policy}
}

func (s *service) List(ctx context.Context, p ListParams) (result.Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
		zap.String("from_date", p.Range.From),
		zap.String("to_date", p.Range.To),
		zap.String("search_type", p.SearchType),
		zap.Int("page_number", p.PageNumber),
	)

	env, err := BuildList(s.creds, s.signer, p)
	if err != nil {
		log.Warn("failed to build order list request", zap.Error(err))
		return result.Result{}, err
	}

	raw, err := s.sender.Send(ctx, PathList, env, s.policy)
	if err != nil {
		return result.Result{}, err
	}

	res := NormalizeList(raw, p.PageNumber)
	log.Info("List finished", zap.String("status", string(res.Status)), zap.Int("count", len(res.Records)))
	return res, nil
}
