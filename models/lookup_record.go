package models

import "gorm.io/gorm"

// LookupRecord is one row per analyzed image, kept when a database is
// configured so lookups can be audited later.
type LookupRecord struct {
	gorm.Model
	Label      string `gorm:"index;not null"`
	Confidence float64
	CacheHit   bool
	ProviderOK bool
}
