package services

import (
	"log"

	"gorm.io/gorm"

	"github.com/Aman5012/Food-Nutrition-Analyzer/models"
)

// HistoryService records one LookupRecord per analyzed image when a
// database is configured. Failures never affect the request.
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService returns nil when db is nil, which turns history
// recording off entirely.
func NewHistoryService(db *gorm.DB) *HistoryService {
	if db == nil {
		return nil
	}
	return &HistoryService{db: db}
}

func (h *HistoryService) Record(label string, confidence float64, cacheHit, providerOK bool) {
	rec := models.LookupRecord{
		Label:      label,
		Confidence: confidence,
		CacheHit:   cacheHit,
		ProviderOK: providerOK,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		log.Printf("Could not record lookup for %q: %v", label, err)
	}
}
