// Package normalize converts heterogeneous raw stat encodings into
// canonical numeric fields and backfills missing-but-derivable
// attributes. All transforms are pure; unparseable input degrades to a
// nil field instead of an error so a single bad record never aborts an
// evaluation pass.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Wingspan tends to exceed height by a position-dependent margin; these
// offsets are applied only when the source reports no wingspan at all.
const defaultWingspanBonus = 3.0

var wingspanBonusByPosition = map[string]float64{
	"PG": 2.5,
	"SG": 3.0,
	"SF": 3.5,
	"PF": 4.0,
	"C":  4.5,
}

const inchesPerCentimeter = 2.54

// structured mirrors the {us, intl} measurement object some sources emit:
// a feet-inches string plus a centimeter value.
type structured struct {
	US   string  `json:"us"`
	Intl float64 `json:"intl"`
}

// ParseMeasurement converts a raw height or wingspan encoding to total
// inches. Accepted forms:
//
//	`6'5"` or `6'5`       feet-inches with apostrophe
//	`6-5`                 feet-inches with dash
//	`{"us":"6'5\"","intl":196}`  structured object, US preferred
//	`196.5`               bare number over 100 is centimeters, else inches
//
// Anything else yields nil.
func ParseMeasurement(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "{") {
		var s structured
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil
		}
		if v := parseFeetInches(s.US, "'"); v != nil {
			return v
		}
		if s.Intl > 0 {
			v := s.Intl / inchesPerCentimeter
			return &v
		}
		return nil
	}

	if strings.Contains(raw, "'") {
		return parseFeetInches(raw, "'")
	}
	if strings.Contains(raw, "-") {
		return parseFeetInches(raw, "-")
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	// Heights over 100 only make sense as centimeters.
	if n > 100 {
		n /= inchesPerCentimeter
	}
	return &n
}

// parseFeetInches handles "6'5\"" and "6-5" style encodings.
func parseFeetInches(raw, sep string) *float64 {
	feetStr, inchStr, ok := strings.Cut(raw, sep)
	if !ok {
		return nil
	}
	feet, err := strconv.Atoi(strings.TrimSpace(feetStr))
	if err != nil {
		return nil
	}
	inchStr = strings.TrimSpace(strings.Trim(inchStr, `"'`))
	inches := 0.0
	if inchStr != "" {
		inches, err = strconv.ParseFloat(inchStr, 64)
		if err != nil {
			return nil
		}
	}
	v := float64(feet)*12 + inches
	return &v
}

// EstimateWingspan derives a wingspan estimate from a measured height
// using the per-position offset table.
func EstimateWingspan(heightIn float64, position string) float64 {
	bonus, ok := wingspanBonusByPosition[position]
	if !ok {
		bonus = defaultWingspanBonus
	}
	return heightIn + bonus
}
