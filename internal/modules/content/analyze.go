package content

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/inkwell-app/inkwell/internal/modules/inference"
	"github.com/inkwell-app/inkwell/internal/modules/readability"
)

// Analyze scores the readability and sentiment of text and records the
// result. Sentiment and persistence fail independently; only a failure to
// resolve the search term fails the whole operation.
func (s *Service) Analyze(ctx context.Context, text string) (Analysis, error) {
	ctx = detach(ctx)
	var out Analysis
	err := s.permits.Do(ctx, func(ctx context.Context) error {
		term, err := s.repo.GetOrCreateTerm(ctx, text)
		if err != nil {
			return err
		}

		out.Readability = string(s.Readability(text).Level)

		out.Sentiment = msgSentimentFallback
		if label, err := s.Sentiment(ctx, text); err != nil {
			s.logger.Warn("sentiment analysis failed",
				zap.String("kind", string(inference.KindOf(err))),
				zap.Error(err),
			)
		} else {
			out.Sentiment = string(label)
		}

		if _, err := s.repo.CreateSentimentAnalysis(ctx, out.Readability, out.Sentiment, term.ID); err != nil {
			s.logger.Error("save sentiment analysis", zap.String("term_id", term.ID), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("content analysis failed", zap.Error(err))
		return Analysis{}, fmt.Errorf("analyze content: %w", err)
	}
	return out, nil
}

// Readability runs the local readability estimate.
func (s *Service) Readability(text string) readability.Result {
	return readability.Estimate(text)
}

// Sentiment classifies text with the sentiment endpoint.
func (s *Service) Sentiment(ctx context.Context, text string) (inference.Label, error) {
	raw, err := s.client.Query(ctx, inference.EndpointSentiment, inference.ClassificationRequest{
		Inputs: truncateForSentiment(text),
	})
	if err != nil {
		return "", err
	}
	return inference.Sentiment(raw)
}
