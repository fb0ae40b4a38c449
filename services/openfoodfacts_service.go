package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultOFFURL = "https://world.openfoodfacts.org"

// OpenFoodFactsService is the keyless fallback catalog. Its records are
// community-submitted, so every hit maps as a branded-style entry and the
// scorer trusts them less than standardized USDA rows.
type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
}

func NewOpenFoodFactsService() *OpenFoodFactsService {
	base := os.Getenv("OFF_API_URL")
	if base == "" {
		base = defaultOFFURL
	}
	return &OpenFoodFactsService{
		baseURL: base,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type offSearchResponse struct {
	Products []struct {
		Code        string         `json:"code"`
		ProductName string         `json:"product_name"`
		Brands      string         `json:"brands"`
		Nutriments  map[string]any `json:"nutriments"`
	} `json:"products"`
}

func (s *OpenFoodFactsService) Search(ctx context.Context, query string, maxResults int) ([]RawCandidate, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		s.baseURL, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create OFF request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFF response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: OFF status %d", ErrExternalUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("OFF API error %d: %s", resp.StatusCode, string(body))
	}

	var sr offSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse OFF JSON: %w", err)
	}

	results := make([]RawCandidate, 0, len(sr.Products))
	for _, p := range sr.Products {
		if p.ProductName == "" {
			continue
		}
		c := RawCandidate{
			ExternalID: "off:" + p.Code,
			Name:       p.ProductName,
			Brand:      p.Brands,
			DataType:   "Branded",
		}
		// Prefer kcal; reconstruct from kJ when that is all OFF has.
		if v, ok := extractNutriment(p.Nutriments, "energy-kcal_100g"); ok {
			c.Calories = v
		} else if v, ok := extractNutriment(p.Nutriments, "energy-kj_100g"); ok {
			c.Calories = v / 4.184
		}
		if v, ok := extractNutriment(p.Nutriments, "proteins_100g"); ok {
			c.Protein = v
		}
		if v, ok := extractNutriment(p.Nutriments, "carbohydrates_100g"); ok {
			c.Carbs = v
		}
		if v, ok := extractNutriment(p.Nutriments, "fat_100g"); ok {
			c.Fat = v
		}
		if v, ok := extractNutriment(p.Nutriments, "fiber_100g"); ok {
			c.Fiber = v
		}
		if v, ok := extractNutriment(p.Nutriments, "sugars_100g"); ok {
			c.Sugar = v
		}
		if v, ok := extractNutriment(p.Nutriments, "sodium_100g"); ok {
			c.Sodium = v * 1000 // OFF reports grams
		}
		results = append(results, c)
	}
	return results, nil
}

// extractNutriment coerces an OFF nutriments value to float64; the feed
// mixes numbers and numeric strings.
func extractNutriment(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(x, "%f", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}
