package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Aman5012/Food-Nutrition-Analyzer/models"
)

// ErrNutritionNotFound covers every provider outcome that leaves a request
// without nutrition data: missing credentials, unreachable API, non-2xx,
// unparseable payload, empty nutrient set, or a zero-calorie result. Callers
// treat them all the same and never cache them.
var ErrNutritionNotFound = errors.New("nutrition data not found")

// NutritionProvider fetches a per-100g nutrition record for a food label.
type NutritionProvider interface {
	FetchNutrition(label string) (*models.NutritionRecord, error)
}

type EdamamService struct {
	appID   string
	appKey  string
	baseURL string
	client  *http.Client
}

// NewEdamamService initializes the EdamamService with credentials and HTTP client
func NewEdamamService() *EdamamService {
	return &EdamamService{
		appID:   os.Getenv("EDAMAM_APP_ID"),
		appKey:  os.Getenv("EDAMAM_APP_KEY"),
		baseURL: "https://api.edamam.com",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type nutritionDetailsResponse struct {
	Ingredients []struct {
		Parsed []struct {
			Nutrients map[string]struct {
				Quantity float64 `json:"quantity"`
			} `json:"nutrients"`
		} `json:"parsed"`
	} `json:"ingredients"`
}

// FetchNutrition calls the Edamam nutrition-details API for 100g of the
// named food. One attempt per call; retries are the caller's business.
func (s *EdamamService) FetchNutrition(label string) (*models.NutritionRecord, error) {
	if s.appID == "" || s.appKey == "" || s.appID == "EDAMAM_APP_ID" || s.appKey == "EDAMAM_APP_KEY" {
		return nil, fmt.Errorf("edamam credentials are not set: %w", ErrNutritionNotFound)
	}

	u := fmt.Sprintf("%s/api/nutrition-details?app_id=%s&app_key=%s", s.baseURL, s.appID, s.appKey)
	payload := map[string]any{
		"ingr": []string{fmt.Sprintf("100g %s", strings.ToLower(label))},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nutrition payload: %w", err)
	}

	resp, err := s.client.Post(u, "application/json", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to call Edamam nutrition API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read nutrition response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edamam nutrition API error %d: %s", resp.StatusCode, string(body))
	}

	var nr nutritionDetailsResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("failed to parse nutrition JSON: %w", err)
	}
	if len(nr.Ingredients) == 0 || len(nr.Ingredients[0].Parsed) == 0 {
		return nil, fmt.Errorf("no parsed ingredient for %q: %w", label, ErrNutritionNotFound)
	}
	nutrients := nr.Ingredients[0].Parsed[0].Nutrients
	if len(nutrients) == 0 {
		return nil, fmt.Errorf("no detailed nutrition data for %q: %w", label, ErrNutritionNotFound)
	}

	get := func(key string) float64 {
		return math.Round(nutrients[key].Quantity*10) / 10
	}

	calories := int(get("ENERC_KCAL"))
	if calories == 0 {
		// Zero calories means the API did not really know this food.
		return nil, fmt.Errorf("zero calories reported for %q: %w", label, ErrNutritionNotFound)
	}

	return &models.NutritionRecord{
		NutritionPer100g: models.NutritionPer100g{
			Calories:     calories,
			Protein:      get("PROCNT"),
			Fat:          get("FAT"),
			Carbs:        get("CHOCDF"),
			Fiber:        get("FIBTG"),
			Sugar:        get("SUGAR"),
			Sodium:       get("NA"),
			Cholesterol:  get("CHOLE"),
			Calcium:      get("CA"),
			Iron:         get("FE"),
			Magnesium:    get("MG"),
			Potassium:    get("K"),
			Zinc:         get("ZN"),
			Phosphorus:   get("P"),
			VitaminA:     get("VITA_RAE"),
			VitaminC:     get("VITC"),
			ThiaminB1:    get("THIA"),
			RiboflavinB2: get("RIBF"),
			NiacinB3:     get("NIA"),
			VitaminB6:    get("VITB6A"),
			VitaminB12:   get("VITB12"),
			VitaminD:     get("VITD"),
			VitaminE:     get("TOCPHA"),
			VitaminK:     get("VITK1"),
		},
		Allergens: []string{},
	}, nil
}
