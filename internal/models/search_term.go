package models

import (
	"crypto/sha256"
	"encoding/hex"

	"gorm.io/gorm"
)

// SearchTermModel is a submitted topic or analyzed text, unique by value.
type SearchTermModel struct {
	Base
	Term string `json:"term" gorm:"type:longtext;not null"`
	Hash string `json:"-"    gorm:"type:char(64);uniqueIndex;not null"` // sha256(term)
}

func (SearchTermModel) TableName() string { return "search_terms" }

func (m *SearchTermModel) BeforeSave(tx *gorm.DB) error {
	m.Hash = TermHash(m.Term)
	return nil
}

// TermHash returns the lookup key stored for term.
func TermHash(term string) string {
	sum := sha256.Sum256([]byte(term))
	return hex.EncodeToString(sum[:])
}
