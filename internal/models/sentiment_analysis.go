package models

import "gorm.io/gorm"

// SentimentAnalysisModel records the readability and sentiment of analyzed text.
type SentimentAnalysisModel struct {
	Base
	Readability  string           `json:"readability"    gorm:"size:64;not null"`
	Sentiment    string           `json:"sentiment"      gorm:"size:64;not null"`
	SearchTermID string           `json:"search_term_id" gorm:"type:char(36);index;not null"`
	SearchTerm   *SearchTermModel `json:"search_term,omitempty" gorm:"foreignKey:SearchTermID"`
}

func (SentimentAnalysisModel) TableName() string { return "sentiment_analyses" }

func (m *SentimentAnalysisModel) BeforeCreate(tx *gorm.DB) error {
	if m.SearchTermID == "" {
		return ErrTermRequired
	}
	return m.Base.BeforeCreate(tx)
}
