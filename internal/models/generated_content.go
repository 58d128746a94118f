package models

import "gorm.io/gorm"

// GeneratedContentModel is an article produced for a search term.
type GeneratedContentModel struct {
	Base
	Content      string           `json:"content"        gorm:"type:longtext;not null"`
	SearchTermID string           `json:"search_term_id" gorm:"type:char(36);index;not null"`
	SearchTerm   *SearchTermModel `json:"search_term,omitempty" gorm:"foreignKey:SearchTermID"`
}

func (GeneratedContentModel) TableName() string { return "generated_contents" }

func (m *GeneratedContentModel) BeforeCreate(tx *gorm.DB) error {
	if m.SearchTermID == "" {
		return ErrTermRequired
	}
	return m.Base.BeforeCreate(tx)
}
