package convert

import (
	"fmt"
	"math"
	"strconv"
)

func StringToFloat64(number string) (float64, error) {
	value, err := strconv.ParseFloat(number, 64)

	if err != nil {
		return 0.0, fmt.Errorf("error parsing number '%s' to float64: %w", number, err)
	}

	return value, nil
}

func PriceStringToCents(priceString string) (int64, error) {
	priceFloat, err := strconv.ParseFloat(priceString, 64)

	if err != nil {
		return 0, fmt.Errorf("error parsing price string: %w", err)
	}

	// Multiply by 100 and round to the nearest integer to handle money correctly.
	cents := math.Round(priceFloat * 100)

	return int64(cents), nil
}

func CentsToPriceString(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}
