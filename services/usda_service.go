package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultUSDAURL = "https://api.nal.usda.gov/fdc/v1"

// USDAService queries USDA FoodData Central by free-text name.
type USDAService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewUSDAService reads credentials from the environment. A missing key is
// a configuration error, not a per-call condition.
func NewUSDAService() (*USDAService, error) {
	key := os.Getenv("USDA_API_KEY")
	if key == "" {
		return nil, errors.New("USDA_API_KEY not set")
	}
	base := os.Getenv("USDA_API_URL")
	if base == "" {
		base = defaultUSDAURL
	}
	return &USDAService{
		apiKey:  key,
		baseURL: base,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// fdcSearchResponse mirrors the /foods/search payload.
type fdcSearchResponse struct {
	Foods []struct {
		FdcID       int64  `json:"fdcId"`
		Description string `json:"description"`
		DataType    string `json:"dataType"`
		BrandOwner  string `json:"brandOwner"`
		BrandName   string `json:"brandName"`
		// Per-100g values for non-branded types; branded entries report
		// label nutrients on the same keys.
		FoodNutrients []struct {
			NutrientNumber string  `json:"nutrientNumber"`
			NutrientName   string  `json:"nutrientName"`
			UnitName       string  `json:"unitName"`
			Value          float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// Search calls the FoodData Central search endpoint and maps each hit into
// the canonical candidate shape.
func (s *USDAService) Search(ctx context.Context, query string, maxResults int) ([]RawCandidate, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	u := fmt.Sprintf("%s/foods/search?query=%s&pageSize=%d&api_key=%s",
		s.baseURL, url.QueryEscape(query), maxResults, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create FDC request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		// Timeouts and connection failures degrade like an outage.
		return nil, fmt.Errorf("%w: %v", ErrExternalUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read FDC response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: FDC status %d", ErrExternalUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("FDC API error %d: %s", resp.StatusCode, string(body))
	}

	var sr fdcSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse FDC JSON: %w", err)
	}

	results := make([]RawCandidate, 0, len(sr.Foods))
	for _, f := range sr.Foods {
		c := RawCandidate{
			ExternalID: fmt.Sprintf("fdc:%d", f.FdcID),
			Name:       f.Description,
			DataType:   f.DataType,
		}
		if f.BrandName != "" {
			c.Brand = f.BrandName
		} else {
			c.Brand = f.BrandOwner
		}
		for _, n := range f.FoodNutrients {
			v := n.Value
			switch n.NutrientNumber {
			case "208", "1008": // Energy (kcal)
				if n.UnitName == "kJ" || n.UnitName == "KJ" {
					v = v / 4.184
				}
				c.Calories = v
			case "203": // Protein
				c.Protein = v
			case "205": // Carbohydrate, by difference
				c.Carbs = v
			case "204": // Total lipid (fat)
				c.Fat = v
			case "291": // Fiber, total dietary
				c.Fiber = v
			case "269": // Sugars, total
				c.Sugar = v
			case "307": // Sodium, Na (mg)
				c.Sodium = v
			}
		}
		results = append(results, c)
	}
	return results, nil
}
