// Package content implements article generation and text analysis on top of
// the inference client, the permit pool and the relational store.
package content

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/inkwell-app/inkwell/internal/modules/inference"
	"github.com/inkwell-app/inkwell/internal/pkg/permit"
)

// Querier sends a payload to a model endpoint.
type Querier interface {
	Query(ctx context.Context, endpoint inference.Endpoint, payload any) (json.RawMessage, error)
}

// Archiver stores a copy of each generated article.
type Archiver interface {
	PutArticle(ctx context.Context, id string, created time.Time, body []byte) (string, error)
}

// Service handles generation and analysis operations.
type Service struct {
	repo     *Repository
	client   Querier
	permits  *permit.Pool
	archiver Archiver
	logger   *zap.Logger
}

func NewService(repo *Repository, client Querier, permits *permit.Pool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, client: client, permits: permits, logger: logger}
}

// WithArchiver enables uploading generated articles.
func (s *Service) WithArchiver(a Archiver) *Service {
	s.archiver = a
	return s
}

// PermitsInUse reports how many operations currently hold a permit.
func (s *Service) PermitsInUse() int { return s.permits.InUse() }

// detach keeps an operation running after its caller goes away.
func detach(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
