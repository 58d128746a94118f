package content

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/inkwell-app/inkwell/internal/models"
)

// Repository persists search terms and the records created from them.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository { return &Repository{db: db} }

// FindTerm returns the term with exactly this text, or nil.
func (r *Repository) FindTerm(ctx context.Context, term string) (*models.SearchTermModel, error) {
	var m models.SearchTermModel
	err := r.db.WithContext(ctx).
		Where("hash = ? AND term = ?", models.TermHash(term), term).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetOrCreateTerm looks term up by exact text and creates it when absent.
// If a concurrent request inserted the same term first, the stored row is
// returned instead.
func (r *Repository) GetOrCreateTerm(ctx context.Context, term string) (*models.SearchTermModel, error) {
	existing, err := r.FindTerm(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("find search term: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	m := &models.SearchTermModel{Term: term}
	createErr := r.db.WithContext(ctx).Create(m).Error
	if createErr == nil {
		return m, nil
	}
	winner, err := r.FindTerm(ctx, term)
	if err == nil && winner != nil {
		return winner, nil
	}
	return nil, fmt.Errorf("create search term: %w", createErr)
}

func (r *Repository) CreateGeneratedContent(ctx context.Context, content, termID string) (*models.GeneratedContentModel, error) {
	m := &models.GeneratedContentModel{Content: content, SearchTermID: termID}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Repository) CreateSentimentAnalysis(ctx context.Context, readability, sentiment, termID string) (*models.SentimentAnalysisModel, error) {
	m := &models.SentimentAnalysisModel{Readability: readability, Sentiment: sentiment, SearchTermID: termID}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// RecentContents returns the newest generated articles with their terms.
func (r *Repository) RecentContents(ctx context.Context, limit int) ([]models.GeneratedContentModel, error) {
	var items []models.GeneratedContentModel
	if limit <= 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Preload("SearchTerm").
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
