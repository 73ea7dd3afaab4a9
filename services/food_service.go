package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/Aman5012/Food-Nutrition-Analyzer/models"
)

// ImageArchiver stores a copy of analyzed images for later audit.
type ImageArchiver interface {
	Archive(imageData []byte) (string, error)
}

// AnalyzeResult is the response payload for one analyzed image.
type AnalyzeResult struct {
	Predictions      []models.Prediction      `json:"predictions"`
	NutritionPer100g *models.NutritionPer100g `json:"nutritionPer100g"`
	Allergens        []string                 `json:"allergens"`
}

// FoodService ties the classifier, the nutrition cache and the provider
// together. History and archiver are optional; nil disables them.
type FoodService struct {
	classifier Classifier
	cache      NutritionCache
	provider   NutritionProvider
	history    *HistoryService
	archiver   ImageArchiver
}

func NewFoodService(classifier Classifier, cache NutritionCache, provider NutritionProvider, history *HistoryService, archiver ImageArchiver) *FoodService {
	return &FoodService{
		classifier: classifier,
		cache:      cache,
		provider:   provider,
		history:    history,
		archiver:   archiver,
	}
}

// Analyze classifies the image and resolves nutrition for the top
// prediction: cache first, provider on a miss, write-through on success.
// Provider failures are not errors; the result just carries no nutrition,
// and the label stays uncached so the next request retries.
func (s *FoodService) Analyze(imageData []byte) (*AnalyzeResult, error) {
	preds, err := s.classifier.Classify(imageData)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	if len(preds) == 0 {
		return nil, errors.New("classifier returned no predictions")
	}
	top := preds[0].Label

	var rec *models.NutritionRecord
	cacheHit := false
	providerOK := false

	if cached, ok := s.cache.Get(top); ok {
		log.Printf("CACHE HIT: found %q in local DB", top)
		rec = cached
		cacheHit = true
	} else {
		log.Printf("CACHE MISS: %q not found, calling nutrition provider", top)
		fetched, err := s.provider.FetchNutrition(top)
		if err != nil {
			log.Printf("No nutrition data for %q: %v", top, err)
		} else {
			log.Printf("SAVING: caching %q in local DB", top)
			s.cache.Put(top, fetched)
			rec = fetched
			providerOK = true
		}
	}

	if s.history != nil {
		s.history.Record(top, preds[0].Confidence, cacheHit, providerOK)
	}
	if s.archiver != nil {
		if _, err := s.archiver.Archive(imageData); err != nil {
			log.Printf("Image archival failed: %v", err)
		}
	}

	res := &AnalyzeResult{Predictions: preds, Allergens: []string{}}
	if rec != nil {
		n := rec.NutritionPer100g
		res.NutritionPer100g = &n
		if rec.Allergens != nil {
			res.Allergens = rec.Allergens
		}
	}
	return res, nil
}
