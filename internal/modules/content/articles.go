package content

import (
	"context"
	"html/template"

	"go.uber.org/zap"

	"github.com/inkwell-app/inkwell/internal/pkg/markdown"
)

// RecentArticles returns the newest generated articles rendered to HTML.
func (s *Service) RecentArticles(ctx context.Context, limit int) ([]Article, error) {
	items, err := s.repo.RecentContents(ctx, limit)
	if err != nil {
		return nil, err
	}
	articles := make([]Article, 0, len(items))
	for _, item := range items {
		html, err := markdown.Render(item.Content)
		if err != nil {
			s.logger.Warn("render article", zap.String("id", item.ID), zap.Error(err))
			html = template.HTML(template.HTMLEscapeString(item.Content))
		}
		topic := ""
		if item.SearchTerm != nil {
			topic = item.SearchTerm.Term
		}
		articles = append(articles, Article{
			ID:      item.ID,
			Topic:   topic,
			HTML:    html,
			Created: item.CreatedAt,
		})
	}
	return articles, nil
}
