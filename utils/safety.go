package utils

import (
	"fmt"
)

// Daily reference limits used for per-item screens (2000 kcal reference
// day, CDRR sodium).
const (
	refCalories   = 2000.0
	sodiumLimitMg = 2300.0
)

// AssessFoodSafety flags a single eaten portion against dietary-guideline
// style screens. Inputs are the scaled (per-portion) values.
func AssessFoodSafety(foodName string, calories, sugarG, sodiumMg, fatG float64) []string {
	var warnings []string

	// Sugars ≥10% of the item's own calories.
	if calories > 0 && sugarG > 0 {
		pct := (sugarG * 4.0) / calories
		if pct >= 0.10 {
			warnings = append(warnings,
				fmt.Sprintf("High sugars for this item (%.0f%% of its calories).", pct*100))
		}
	}

	// One item carrying a big share of the daily sodium limit.
	if sodiumMg >= 0.20*sodiumLimitMg {
		warnings = append(warnings,
			fmt.Sprintf("High sodium: %.0f mg is %.0f%% of the daily limit.",
				sodiumMg, sodiumMg/sodiumLimitMg*100))
	}

	// Fat-dense items relative to a reference day.
	if calories > 0 && fatG > 0 {
		pct := (fatG * 9.0) / calories
		if pct >= 0.60 {
			warnings = append(warnings,
				fmt.Sprintf("Most of this item's calories come from fat (%.0f%%).", pct*100))
		}
	}

	// Calorie-dense single item.
	if calories >= 0.40*refCalories {
		warnings = append(warnings,
			fmt.Sprintf("Very calorie-dense: %.0f kcal in one item.", calories))
	}

	return warnings
}
