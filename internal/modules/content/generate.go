package content

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/modules/inference"
)

// Generate writes an article about topic and stores it under the topic's
// search term. The whole operation holds one permit.
func (s *Service) Generate(ctx context.Context, topic string) (string, error) {
	ctx = detach(ctx)
	var text string
	err := s.permits.Do(ctx, func(ctx context.Context) error {
		term, err := s.repo.GetOrCreateTerm(ctx, topic)
		if err != nil {
			return err
		}

		raw, err := s.client.Query(ctx, inference.EndpointGeneration, inference.GenerationRequest{
			Inputs:     ArticlePrompt(topic),
			Parameters: inference.DefaultGenerationParameters(),
		})
		if err != nil {
			return err
		}
		generated, err := inference.GeneratedText(raw)
		if err != nil {
			return err
		}

		record, err := s.repo.CreateGeneratedContent(ctx, generated, term.ID)
		if err != nil {
			return fmt.Errorf("save generated content: %w", err)
		}
		s.archive(ctx, record, topic)
		text = generated
		return nil
	})
	if err != nil {
		s.logger.Warn("content generation failed",
			zap.String("topic", topic),
			zap.String("kind", string(inference.KindOf(err))),
			zap.Error(err),
		)
		return "", err
	}
	return text, nil
}

func (s *Service) archive(ctx context.Context, record *models.GeneratedContentModel, topic string) {
	if s.archiver == nil || record == nil {
		return
	}
	body := "# " + strings.TrimSpace(topic) + "\n\n" + record.Content + "\n"
	key, err := s.archiver.PutArticle(ctx, record.ID, record.CreatedAt, []byte(body))
	if err != nil {
		s.logger.Error("archive generated content", zap.String("id", record.ID), zap.Error(err))
		return
	}
	s.logger.Debug("archived generated content", zap.String("id", record.ID), zap.String("key", key))
}

// GenerationFailureMessage is the user-facing text for a failed generation.
func GenerationFailureMessage(err error) string {
	if inference.IsTransient(err) {
		return msgModelLoading
	}
	return fmt.Sprintf(msgGenerationFailedFmt, err)
}
