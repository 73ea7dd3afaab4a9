package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman5012/Food-Nutrition-Analyzer/models"
	"github.com/Aman5012/Food-Nutrition-Analyzer/services"
)

type fakeClassifier struct {
	preds []models.Prediction
	err   error
}

func (f *fakeClassifier) Classify([]byte) ([]models.Prediction, error) {
	return f.preds, f.err
}

type fakeProvider struct {
	calls int
	rec   *models.NutritionRecord
	err   error
}

func (f *fakeProvider) FetchNutrition(string) (*models.NutritionRecord, error) {
	f.calls++
	return f.rec, f.err
}

func pizzaPredictions() []models.Prediction {
	return []models.Prediction{
		{Label: "Pizza", Confidence: 0.91},
		{Label: "Flatbread", Confidence: 0.05},
		{Label: "Quiche", Confidence: 0.02},
	}
}

func TestAnalyzeCacheHitSkipsProvider(t *testing.T) {
	cache := services.NewMemoryCache()
	cache.Put("Pizza", record(266))
	provider := &fakeProvider{}
	svc := services.NewFoodService(&fakeClassifier{preds: pizzaPredictions()}, cache, provider, nil, nil)

	res, err := svc.Analyze([]byte("img"))

	require.NoError(t, err)
	assert.Zero(t, provider.calls)
	require.NotNil(t, res.NutritionPer100g)
	assert.Equal(t, 266, res.NutritionPer100g.Calories)
	assert.Len(t, res.Predictions, 3)
}

func TestAnalyzeMissFetchesOnceAndWritesThrough(t *testing.T) {
	cache := services.NewMemoryCache()
	provider := &fakeProvider{rec: record(266)}
	svc := services.NewFoodService(&fakeClassifier{preds: pizzaPredictions()}, cache, provider, nil, nil)

	res, err := svc.Analyze([]byte("img"))
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	require.NotNil(t, res.NutritionPer100g)
	assert.Equal(t, 266, res.NutritionPer100g.Calories)

	cached, ok := cache.Get("Pizza")
	require.True(t, ok)
	assert.Equal(t, 266, cached.NutritionPer100g.Calories)

	// Back-to-back identical request is a pure hit.
	res2, err := svc.Analyze([]byte("img"))
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, res.NutritionPer100g, res2.NutritionPer100g)
}

func TestAnalyzeProviderFailureNotCachedAndRetried(t *testing.T) {
	cache := services.NewMemoryCache()
	provider := &fakeProvider{err: services.ErrNutritionNotFound}
	svc := services.NewFoodService(&fakeClassifier{preds: pizzaPredictions()}, cache, provider, nil, nil)

	res, err := svc.Analyze([]byte("img"))
	require.NoError(t, err)
	assert.Nil(t, res.NutritionPer100g)
	assert.NotNil(t, res.Allergens)
	assert.Empty(t, res.Allergens)
	assert.Len(t, res.Predictions, 3)

	_, ok := cache.Get("Pizza")
	assert.False(t, ok)

	// Every subsequent request for the label retries the provider.
	_, err = svc.Analyze([]byte("img"))
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestAnalyzeOnlyTopPredictionLookedUp(t *testing.T) {
	cache := services.NewMemoryCache()
	cache.Put("Flatbread", record(275)) // second-ranked, must be ignored
	provider := &fakeProvider{err: errors.New("provider down")}
	svc := services.NewFoodService(&fakeClassifier{preds: pizzaPredictions()}, cache, provider, nil, nil)

	res, err := svc.Analyze([]byte("img"))
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Nil(t, res.NutritionPer100g)
}

func TestAnalyzeClassifierFailure(t *testing.T) {
	svc := services.NewFoodService(&fakeClassifier{err: errors.New("model blew up")},
		services.NewMemoryCache(), &fakeProvider{}, nil, nil)

	_, err := svc.Analyze([]byte("img"))
	require.Error(t, err)
}

func TestAnalyzeConcurrentMissesForDifferentLabelsBothPersist(t *testing.T) {
	cache := services.NewMemoryCache()

	svcA := services.NewFoodService(&fakeClassifier{preds: []models.Prediction{{Label: "Pizza", Confidence: 0.9}}},
		cache, &fakeProvider{rec: record(266)}, nil, nil)
	svcB := services.NewFoodService(&fakeClassifier{preds: []models.Prediction{{Label: "Sushi", Confidence: 0.8}}},
		cache, &fakeProvider{rec: record(130)}, nil, nil)

	done := make(chan error, 2)
	go func() { _, err := svcA.Analyze([]byte("a")); done <- err }()
	go func() { _, err := svcB.Analyze([]byte("b")); done <- err }()
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	_, ok := cache.Get("Pizza")
	assert.True(t, ok)
	_, ok = cache.Get("Sushi")
	assert.True(t, ok)
}
