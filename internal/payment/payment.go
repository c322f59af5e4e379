package payment

import (
	"context"

	"paytm-mcp/internal/checksum"
	"paytm-mcp/internal/config"
	"paytm-mcp/internal/gateway"
	"paytm-mcp/internal/logger"
	"paytm-mcp/internal/result"

	"go.uber.org/zap"
)

// Service covers the payment link endpoints.
type Service interface {
	CreateLink(ctx context.Context, p CreateLinkParams) (result.Result, error)
	FetchLinks(ctx context.Context) (result.Result, error)
	FetchTransactions(ctx context.Context, linkID string) (result.Result, error)
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

func (s *service) CreateLink(ctx context.Context, p CreateLinkParams) (result.Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateLink"),
		zap.Bool("fixed_amount", p.Amount != nil),
	)

	env, err := BuildCreateLink(s.creds, s.signer, p)
	if err != nil {
		log.Warn("failed to build create link request", zap.Error(err))
		return result.Result{}, err
	}

	raw, err := s.sender.Send(ctx, PathCreateLink, env, s.policy)
	if err != nil {
		return result.Result{}, err
	}

	res := NormalizeCreateLink(raw)
	log.Info("CreateLink finished", zap.String("status", string(res.Status)), zap.String("kind", string(res.Kind)))
	return res, nil
}

func (s *service) FetchLinks(ctx context.Context) (result.Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchLinks"),
	)

	env, err := BuildFetchLinks(s.creds, s.signer)
	if err != nil {
		log.Error("failed to build fetch links request", zap.Error(err))
		return result.Result{}, err
	}

	raw, err := s.sender.Send(ctx, PathFetchLinks, env, s.policy)
	if err != nil {
		return result.Result{}, err
	}

	res := NormalizeFetchLinks(raw)
	log.Info("FetchLinks finished", zap.String("status", string(res.Status)), zap.Int("count", len(res.Records)))
	return res, nil
}

func (s *service) FetchTransactions(ctx context.Context, linkID string) (result.Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchTransactions"),
		zap.String("link_id", linkID),
	)

	env, err := BuildFetchTransactions(s.creds, s.signer, linkID)
	if err != nil {
		log.Warn("failed to build fetch transactions request", zap.Error(err))
		return result.Result{}, err
	}

	raw, err := s.sender.Send(ctx, PathFetchTransactions, env, s.policy)
	if err != nil {
		return result.Result{}, err
	}

	res := NormalizeFetchTransactions(raw, linkID)
	log.Info("FetchTransactions finished", zap.String("status", string(res.Status)), zap.Int("count", len(res.Records)))
	return res, nil
}
